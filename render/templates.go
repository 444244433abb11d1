package render

import (
	"html/template"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

type templatesBuilder struct {
	fs *afero.Afero
}

func newTemplatesBuilder(fs afero.Fs) *templatesBuilder {
	return &templatesBuilder{
		fs: &afero.Afero{Fs: fs},
	}
}

func templateName(dir, filename string) string {
	name := strings.TrimPrefix(filepath.ToSlash(filename), dir+"/")
	name = strings.TrimSuffix(name, ".html")
	return path.Clean(name)
}

func (b *templatesBuilder) loadPartials(fns template.FuncMap) (*template.Template, error) {
	partials := template.New("").Funcs(fns)

	err := b.fs.Walk("partials", func(filename string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || filepath.Ext(filename) != ".html" {
			return nil
		}

		fileContent, err := b.fs.ReadFile(filename)
		if err != nil {
			return err
		}

		partials, err = partials.New(templateName("partials", filename)).Parse(string(fileContent))
		return err
	})
	if err != nil {
		return nil, err
	}

	return partials, nil
}

func (b *templatesBuilder) load(fns template.FuncMap) (map[string]*template.Template, error) {
	partials, err := b.loadPartials(fns)
	if err != nil {
		return nil, err
	}

	baseTemplate, err := b.fs.ReadFile("layouts/baseof.html")
	if err != nil {
		return nil, err
	}

	layouts := map[string]*template.Template{}

	err = b.fs.Walk("layouts", func(filename string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || filepath.Ext(filename) != ".html" {
			return nil
		}

		name := templateName("layouts", filename)
		if name == "baseof" {
			return nil
		}

		tpl, err := partials.Clone()
		if err != nil {
			return err
		}

		tpl, err = tpl.New(name).Parse(string(baseTemplate))
		if err != nil {
			return err
		}

		fileContent, err := b.fs.ReadFile(filename)
		if err != nil {
			return err
		}

		tpl, err = tpl.Parse(string(fileContent))
		if err != nil {
			return err
		}

		layouts[name] = tpl
		return nil
	})

	return layouts, err
}
