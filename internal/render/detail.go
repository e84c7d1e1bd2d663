package render

import (
	"context"
	"errors"
	"html/template"
	"strconv"

	"portfolio.dconn.dev/internal/models"
	"portfolio.dconn.dev/internal/services"
)

// State is the outcome of rendering a detail page
type State int

const (
	StateNoSelection State = iota
	StateNotFound
	StateLoadError
	StateReady
)

// Headings shown for the non-ready states
const (
	HeadingNoSelection = "No project selected"
	HeadingNotFound    = "Project not found"
	HeadingLoadError   = "Error loading project"
)

func (s State) String() string {
	switch s {
	case StateNoSelection:
		return "no-selection"
	case StateNotFound:
		return "not-found"
	case StateLoadError:
		return "load-error"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// ProjectFinder looks up one project
type ProjectFinder interface {
	GetByID(ctx context.Context, id string) (*models.Project, error)
}

// Row is one line of the attribute table
type Row struct {
	Key   string
	Value string
}

// GalleryItem is one media item of the detail gallery
type GalleryItem struct {
	Index      int
	Media      models.MediaItem
	Alt        string
	Title      string
	Link       string
	Selected   bool
	Viewable   bool // opens the media viewer on click
	Protection models.Protection
}

// Detail is the view model of the detail page
type Detail struct {
	State           State
	ID              string
	Heading         string
	DocumentTitle   string
	Description     string
	DescriptionHTML template.HTML
	Rows            []Row
	Main            *GalleryItem
	Thumbs          []GalleryItem
	Err             error
}

// Ready reports whether a project was found and rendered
func (d *Detail) Ready() bool {
	return d.State == StateReady
}

// Thumbnail returns the strip image of the item, empty for a video without poster
func (g GalleryItem) Thumbnail() string {
	return thumbnailSrc(g.Media)
}

// BuildDetail resolves id through finder and builds the detail view.
// selected picks the large gallery item; out of range falls back to the first.
func (r *Renderer) BuildDetail(ctx context.Context, finder ProjectFinder, id string, selected int) *Detail {
	if id == "" {
		return &Detail{State: StateNoSelection, Heading: HeadingNoSelection}
	}

	project, err := finder.GetByID(ctx, id)
	if err != nil {
		var nf *services.NotFoundError
		if errors.As(err, &nf) {
			return &Detail{State: StateNotFound, ID: id, Heading: HeadingNotFound, Err: err}
		}
		return &Detail{State: StateLoadError, ID: id, Heading: HeadingLoadError, Err: err}
	}

	d := &Detail{
		State:         StateReady,
		ID:            project.ID,
		Heading:       project.Title,
		DocumentTitle: project.Title + " - Project",
		Description:   project.Description,
		Rows:          AttributeRows(project),
	}
	if r.markdown != nil && project.Description != "" {
		html, err := r.markdownHTML(project.Description)
		if err == nil {
			d.DescriptionHTML = html
		}
	}

	media := project.EffectiveMedia()
	if selected < 0 || selected >= len(media) {
		selected = 0
	}
	for i, m := range media {
		n := strconv.Itoa(i + 1)
		alt := m.Alt
		if alt == "" {
			alt = project.Title + " thumbnail " + n
		}
		d.Thumbs = append(d.Thumbs, GalleryItem{
			Index:      i,
			Media:      m,
			Alt:        alt,
			Title:      "Show image " + n,
			Link:       mediaLink(project.ID, i),
			Selected:   i == selected,
			Viewable:   m.IsImage(),
			Protection: models.ProtectionFor(m),
		})
	}
	if len(d.Thumbs) > 0 {
		main := d.Thumbs[selected]
		if main.Media.Alt == "" {
			main.Alt = project.Title + " image"
		}
		d.Main = &main
	}
	return d
}

// AttributeRows returns the attribute table: Role, Year, Technologies and
// Workload first, then every other detail key in source order. Year is
// always present.
func AttributeRows(p *models.Project) []Row {
	var rows []Row
	if role := p.Details.Value(models.DetailRole); role != "" {
		rows = append(rows, Row{Key: models.DetailRole, Value: role})
	}
	rows = append(rows, Row{Key: "Year", Value: p.Year})
	if tech := p.Details.Value(models.DetailTechnologies); tech != "" {
		rows = append(rows, Row{Key: models.DetailTechnologies, Value: tech})
	}
	if load := p.Details.Value(models.DetailWorkload); load != "" {
		rows = append(rows, Row{Key: models.DetailWorkload, Value: load})
	}
	for _, d := range p.Details {
		switch d.Key {
		case models.DetailRole, models.DetailTechnologies, models.DetailWorkload:
			continue
		}
		rows = append(rows, Row{Key: d.Key, Value: d.Value})
	}
	return rows
}
