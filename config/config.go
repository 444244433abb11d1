package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/danielliu2707/folio/site"
	"github.com/spf13/viper"
)

type Config struct {
	Development     bool
	Port            int
	SourceDirectory string // posts/ and static/ live here
	PublicDirectory string // prerender output
	DataDirectory   string // page view counters; empty disables them

	Site site.Config `mapstructure:"-"`
}

// Parse parses the configuration from config.yml in the working directory,
// if any, and from FOLIO_* environment variables.
func Parse() (*Config, error) {
	return ParseDir(".")
}

// ParseDir is like [Parse] but looks for config.yml in dir.
func ParseDir(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("development", false)
	v.SetDefault("port", 8080)
	v.SetDefault("sourceDirectory", ".")
	v.SetDefault("publicDirectory", "public")
	v.SetDefault("dataDirectory", "")

	v.SetEnvPrefix("folio")
	v.AutomaticEnv()
	for key, env := range map[string]string{
		"development":     "FOLIO_DEVELOPMENT",
		"port":            "FOLIO_PORT",
		"sourceDirectory": "FOLIO_SOURCE",
		"publicDirectory": "FOLIO_PUBLIC",
		"dataDirectory":   "FOLIO_DATA",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: failed to read config file: %w", err)
		}
	}

	conf := &Config{}
	err = v.Unmarshal(conf)
	if err != nil {
		return nil, fmt.Errorf("config: failed to decode: %w", err)
	}

	err = conf.validate()
	if err != nil {
		return nil, err
	}

	conf.Site = ResolveSite(OptionsFromEnv(conf.Development))
	return conf, nil
}

func (c *Config) validate() error {
	var err error

	if c.Port < 0 {
		return errors.New("config: Port should be positive number or 0")
	}

	c.SourceDirectory, err = filepath.Abs(c.SourceDirectory)
	if err != nil {
		return err
	}

	c.PublicDirectory, err = filepath.Abs(c.PublicDirectory)
	if err != nil {
		return err
	}

	if c.DataDirectory != "" {
		c.DataDirectory, err = filepath.Abs(c.DataDirectory)
		if err != nil {
			return err
		}
	}

	if c.PublicDirectory == c.SourceDirectory {
		return errors.New("config: PublicDirectory must differ from SourceDirectory")
	}

	return nil
}

// Addr is the TCP address the server listens on.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
