package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio.dconn.dev/internal/models"
)

func TestBuildCard_LegacyImages(t *testing.T) {
	p := models.Project{ID: "a", Title: "Alpha", Year: "2020", Images: []string{"x.jpg"}}

	card := BuildCard(&p)

	assert.Equal(t, "Alpha", card.Title)
	assert.Equal(t, "2020", card.Meta)
	assert.Equal(t, "x.jpg", card.Thumbnail)
	assert.Equal(t, "Alpha thumbnail", card.ThumbnailAlt)
	assert.False(t, card.PlayOverlay)
	assert.Equal(t, "project.html?id=a", card.Link)
	assert.Equal(t, "View details for Alpha", card.AriaLabel)
}

func TestBuildCard_VideoFirst(t *testing.T) {
	withPoster := models.Project{ID: "v", Media: []models.MediaItem{{Type: models.MediaVideo, Src: "v.mp4", Poster: "p.jpg"}}}
	noPoster := models.Project{ID: "w", Media: []models.MediaItem{{Type: models.MediaVideo, Src: "w.mp4"}}}

	c1 := BuildCard(&withPoster)
	c2 := BuildCard(&noPoster)

	assert.Equal(t, "p.jpg", c1.Thumbnail)
	assert.True(t, c1.PlayOverlay)
	assert.Empty(t, c2.Thumbnail)
	assert.Empty(t, c2.ThumbnailAlt)
	assert.True(t, c2.PlayOverlay)
}

func TestBuildCard_NoMedia(t *testing.T) {
	card := BuildCard(&models.Project{ID: "n", Title: "None"})
	assert.Empty(t, card.Thumbnail)
	assert.False(t, card.PlayOverlay)
	assert.Empty(t, card.Meta)
}

func TestTags(t *testing.T) {
	p := models.Project{Details: models.Details{
		{Key: "Technologies", Value: " Go, ,TypeScript ,  SQL,"},
		{Key: "Role", Value: "Lead"},
	}}

	assert.Equal(t, []string{"Lead", "Go", "TypeScript", "SQL"}, Tags(&p))
	assert.Empty(t, Tags(&models.Project{}))
}

func TestProjectLinkEscapesID(t *testing.T) {
	assert.Equal(t, "project.html?id=a%26b%3Dc", ProjectLink("a&b=c"))
}

func TestBuildCards_KeepsStoreOrder(t *testing.T) {
	cards := BuildCards([]models.Project{{ID: "z"}, {ID: "a"}, {ID: "m"}})

	require.Len(t, cards, 3)
	assert.Equal(t, "z", cards[0].ID)
	assert.Equal(t, "a", cards[1].ID)
	assert.Equal(t, "m", cards[2].ID)
	assert.Empty(t, BuildCards(nil))
}
