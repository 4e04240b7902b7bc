package internal

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/pkg/errors"

	"github.com/derWhity/fyyur/internal/flash"
	"github.com/derWhity/fyyur/internal/format"
	"github.com/derWhity/fyyur/internal/forms"
)

//go:embed templates
var templateFS embed.FS

// view is the value every page template is executed with
type view struct {
	Notices []*flash.Notice
	Data    interface{}
}

// renderer holds one template set per page, each consisting of the layout and the page's content
type renderer struct {
	pages map[string]*template.Template
}

func templateFuncs() template.FuncMap {
	funcs := format.FuncMap()
	funcs["join"] = strings.Join
	funcs["genres"] = forms.Genres
	funcs["contains"] = func(list []string, item string) bool {
		for _, entry := range list {
			if entry == item {
				return true
			}
		}
		return false
	}
	funcs["stateOptions"] = func(states []string, selected string) stateOptions {
		return stateOptions{states, selected}
	}
	return funcs
}

// Data of the state selection inside the forms
type stateOptions struct {
	States   []string
	Selected string
}

// newRenderer parses all embedded page templates
func newRenderer() (*renderer, error) {
	base, err := template.New("layout.html").Funcs(templateFuncs()).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, errors.Wrap(err, "newRenderer: Failed to parse layout")
	}
	files, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "newRenderer: Failed to list page templates")
	}
	r := &renderer{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		tpl, err := base.Clone()
		if err != nil {
			return nil, errors.Wrapf(err, "newRenderer: Failed to clone layout for '%s'", file)
		}
		if tpl, err = tpl.ParseFS(templateFS, file); err != nil {
			return nil, errors.Wrapf(err, "newRenderer: Failed to parse '%s'", file)
		}
		r.pages[strings.TrimSuffix(path.Base(file), ".html")] = tpl
	}
	return r, nil
}

// Render executes the named page and returns the resulting document
func (r *renderer) Render(name string, v view) ([]byte, error) {
	tpl, ok := r.pages[name]
	if !ok {
		return nil, errors.Errorf("Render: There is no page named '%s'", name)
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout.html", v); err != nil {
		return nil, errors.Wrapf(err, "Render: Failed to execute page '%s'", name)
	}
	return buf.Bytes(), nil
}
