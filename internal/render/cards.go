package render

import (
	"net/url"
	"strconv"
	"strings"

	"portfolio.dconn.dev/internal/models"
)

// DetailPage is the path of the project detail page
const DetailPage = "project.html"

// Card is the summary of one project on the listing page
type Card struct {
	ID           string
	Title        string
	Meta         string
	Thumbnail    string // empty when no displayable image exists
	ThumbnailAlt string
	PlayOverlay  bool // first media item is a video
	Tags         []string
	Link         string
	AriaLabel    string
}

// BuildCards maps projects to cards in store order
func BuildCards(projects []models.Project) []Card {
	cards := make([]Card, 0, len(projects))
	for i := range projects {
		cards = append(cards, BuildCard(&projects[i]))
	}
	return cards
}

// BuildCard maps a single project to its card
func BuildCard(p *models.Project) Card {
	card := Card{
		ID:        p.ID,
		Title:     p.Title,
		Meta:      p.Year,
		Tags:      Tags(p),
		Link:      ProjectLink(p.ID),
		AriaLabel: "View details for " + p.Title,
	}

	if first := p.FirstMedia(); first != nil {
		card.Thumbnail = thumbnailSrc(*first)
		card.PlayOverlay = first.IsVideo()
		if card.Thumbnail != "" {
			card.ThumbnailAlt = p.Title + " thumbnail"
		}
	}
	return card
}

// thumbnailSrc returns a video's poster or an image's src
func thumbnailSrc(m models.MediaItem) string {
	if m.IsVideo() {
		return m.Poster
	}
	if m.IsImage() {
		return m.Src
	}
	return ""
}

// Tags returns the role followed by each technology, in source order
func Tags(p *models.Project) []string {
	var tags []string
	if role := p.Details.Value(models.DetailRole); role != "" {
		tags = append(tags, role)
	}
	for _, tech := range strings.Split(p.Details.Value(models.DetailTechnologies), ",") {
		if tech = strings.TrimSpace(tech); tech != "" {
			tags = append(tags, tech)
		}
	}
	return tags
}

// ProjectLink returns the detail page link for a project id
func ProjectLink(id string) string {
	return DetailPage + "?" + url.Values{"id": {id}}.Encode()
}

// mediaLink returns the detail page link with a gallery item selected
func mediaLink(id string, index int) string {
	return DetailPage + "?" + url.Values{"id": {id}, "media": {strconv.Itoa(index)}}.Encode()
}
