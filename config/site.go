package config

import (
	"os"

	"github.com/danielliu2707/folio/site"
)

const (
	EnvSiteProtocol = "URARA_SITE_PROTOCOL"
	EnvSiteDomain   = "URARA_SITE_DOMAIN"

	DefaultDomain = "urara-demo.netlify.app"
)

// Options are the environment inputs of [ResolveSite].
type Options struct {
	EnvProtocol string
	EnvDomain   string
	IsDev       bool
}

// OptionsFromEnv reads the site overrides from the environment.
func OptionsFromEnv(isDev bool) Options {
	return Options{
		EnvProtocol: os.Getenv(EnvSiteProtocol),
		EnvDomain:   os.Getenv(EnvSiteDomain),
		IsDev:       isDev,
	}
}

// ResolveSite returns the fully resolved site configuration. Non-empty
// overrides win; otherwise development uses http:// and production https://.
func ResolveSite(o Options) site.Config {
	c := site.Identity()

	switch {
	case o.EnvProtocol != "":
		c.Protocol = o.EnvProtocol
	case o.IsDev:
		c.Protocol = "http://"
	default:
		c.Protocol = "https://"
	}

	c.Domain = o.EnvDomain
	if c.Domain == "" {
		c.Domain = DefaultDomain
	}

	return c
}
