package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templateFS embed.FS

// Options configures a Renderer
type Options struct {
	SiteTitle     string
	Markdown      bool
	Watermark     string
	PopupMinWidth int
}

// Renderer turns view models into HTML documents
type Renderer struct {
	opts     Options
	index    *template.Template
	project  *template.Template
	markdown goldmark.Markdown
}

// IndexPage is the data of the listing page
type IndexPage struct {
	Site      Options
	Cards     []Card
	LoadError bool
}

// ProjectPage is the data of the detail page
type ProjectPage struct {
	Site   Options
	Detail *Detail
}

// NewRenderer parses the embedded templates
func NewRenderer(opts Options) (*Renderer, error) {
	funcs := template.FuncMap{
		"viewerLink": ViewerLink,
	}
	index, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing index template: %w", err)
	}
	project, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/project.html")
	if err != nil {
		return nil, fmt.Errorf("parsing project template: %w", err)
	}

	r := &Renderer{opts: opts, index: index, project: project}
	if opts.Markdown {
		r.markdown = goldmark.New()
	}
	return r, nil
}

// Options returns the renderer's site options
func (r *Renderer) Options() Options {
	return r.opts
}

// Index writes the listing page
func (r *Renderer) Index(w io.Writer, cards []Card, loadErr bool) error {
	return r.index.Execute(w, IndexPage{Site: r.opts, Cards: cards, LoadError: loadErr})
}

// Project writes the detail page
func (r *Renderer) Project(w io.Writer, d *Detail) error {
	if d.DocumentTitle == "" {
		d.DocumentTitle = r.opts.SiteTitle
	}
	return r.project.Execute(w, ProjectPage{Site: r.opts, Detail: d})
}

func (r *Renderer) markdownHTML(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	// raw HTML in the source is omitted by goldmark's default renderer
	return template.HTML(buf.String()), nil
}

// ViewerLink returns the watermarked preview URL of an image
func ViewerLink(src string) string {
	return "/media/view?" + url.Values{"src": {src}}.Encode()
}
