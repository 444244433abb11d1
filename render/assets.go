package render

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"path"
	"strings"

	"github.com/danielliu2707/folio/log"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	AssetsBaseURL string = "/assets"

	stylesheetName = "main.css"
)

// Asset is a fingerprinted file built from the templates directory.
type Asset struct {
	Type      string
	Path      string
	Integrity string
	Body      []byte
}

// AssetByPath returns the built asset served at path, if any.
func (r *Renderer) AssetByPath(path string) *Asset {
	return r.assets.byPath[path]
}

type assetsBuilder struct {
	log        *zap.SugaredLogger
	fs         afero.Fs
	stylesheet *Asset
	byPath     map[string]*Asset
}

func newAssetsBuilder(fs afero.Fs) *assetsBuilder {
	return &assetsBuilder{
		log:    log.Named("assets"),
		fs:     fs,
		byPath: map[string]*Asset{},
	}
}

func (b *assetsBuilder) build() error {
	raw, err := afero.ReadFile(b.fs, path.Join("assets", stylesheetName))
	if err != nil {
		return err
	}

	b.stylesheet = fingerprint(stylesheetName, "text/css; charset=utf-8", raw)
	b.byPath[b.stylesheet.Path] = b.stylesheet
	b.log.Debugw("asset built", "path", b.stylesheet.Path, "integrity", b.stylesheet.Integrity)
	return nil
}

func fingerprint(filename, contentType string, raw []byte) *Asset {
	var (
		ext  = path.Ext(filename)
		name = strings.TrimSuffix(filename, ext)
		sha  = sha256.Sum256(raw)
	)

	return &Asset{
		Type:      contentType,
		Path:      path.Join(AssetsBaseURL, fmt.Sprintf("%s.%x%s", name, sha[:8], ext)),
		Integrity: "sha256-" + base64.StdEncoding.EncodeToString(sha[:]),
		Body:      raw,
	}
}
