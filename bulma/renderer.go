// Package bulma renders scrape results as HTML fragments styled with the
// Bulma CSS framework, and serves the single-page front end that requests
// them.
package bulma

import (
	"embed"
	"html/template"
	"io"
	"io/fs"

	"github.com/fwojciec/medialinks"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// DefaultTitle is the page title of the index page.
const DefaultTitle = "Media Links"

// Renderer renders results, errors and the index page. Templates are parsed
// once in NewRenderer and never modified, so a Renderer is safe for
// concurrent use.
type Renderer struct {
	tmpl   *template.Template
	title  string
	action string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTitle sets the index page title.
func WithTitle(title string) Option {
	return func(r *Renderer) {
		r.title = title
	}
}

// WithAction sets the endpoint the index page form posts to.
// Defaults to "/scrape/media".
func WithAction(action string) Option {
	return func(r *Renderer) {
		r.action = action
	}
}

// NewRenderer parses the embedded templates.
func NewRenderer(opts ...Option) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		tmpl:   tmpl,
		title:  DefaultTitle,
		action: "/scrape/media",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// RenderLinks writes the panel listing every link of result, headed by the page URL.
func (r *Renderer) RenderLinks(w io.Writer, result *medialinks.ScrapeResult) error {
	return r.tmpl.ExecuteTemplate(w, "panel", result)
}

// RenderError writes an error card containing message.
func (r *Renderer) RenderError(w io.Writer, message string) error {
	return r.tmpl.ExecuteTemplate(w, "error", message)
}

// RenderIndex writes the front-end page with the URL form.
func (r *Renderer) RenderIndex(w io.Writer) error {
	return r.tmpl.ExecuteTemplate(w, "index", struct {
		Title  string
		Action string
	}{r.title, r.action})
}

// StaticFS returns the front-end assets rooted at the static directory.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // embedded path is fixed at compile time
	}
	return sub
}
