package models

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Media item types
const (
	MediaImage = "image"
	MediaVideo = "video"
)

// Well-known detail keys with a fixed place in the attribute table
const (
	DetailRole         = "Role"
	DetailTechnologies = "Technologies"
	DetailWorkload     = "Workload"
)

// Project represents a portfolio project
type Project struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Year        string      `json:"year,omitempty"`
	Description string      `json:"description,omitempty"`
	Media       []MediaItem `json:"media,omitempty"`
	Images      []string    `json:"images,omitempty"` // legacy, superseded by Media
	Details     Details     `json:"details,omitempty"`
}

// MediaItem is one image or video attached to a project
type MediaItem struct {
	Type   string `json:"type"`
	Src    string `json:"src"`
	Poster string `json:"poster,omitempty"` // video only
	Alt    string `json:"alt,omitempty"`
}

// IsImage reports whether the item is an image
func (m MediaItem) IsImage() bool {
	return m.Type == MediaImage
}

// IsVideo reports whether the item is a video
func (m MediaItem) IsVideo() bool {
	return m.Type == MediaVideo
}

// EffectiveMedia returns Media when present, otherwise Images wrapped as image items
func (p *Project) EffectiveMedia() []MediaItem {
	if len(p.Media) > 0 {
		return p.Media
	}
	if len(p.Images) == 0 {
		return nil
	}
	items := make([]MediaItem, len(p.Images))
	for i, src := range p.Images {
		items[i] = MediaItem{Type: MediaImage, Src: src}
	}
	return items
}

// FirstMedia returns the first effective media item, or nil
func (p *Project) FirstMedia() *MediaItem {
	media := p.EffectiveMedia()
	if len(media) == 0 {
		return nil
	}
	return &media[0]
}

// UnmarshalJSON decodes a project, accepting a numeric year and keeping
// the source order of the details object
func (p *Project) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          string      `json:"id"`
		Title       string      `json:"title"`
		Description string      `json:"description"`
		Media       []MediaItem `json:"media"`
		Images      []string    `json:"images"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Project{
		ID:          raw.ID,
		Title:       raw.Title,
		Description: raw.Description,
		Media:       raw.Media,
		Images:      raw.Images,
	}

	doc := gjson.ParseBytes(data)
	if year := doc.Get("year"); year.Exists() && year.Type != gjson.Null {
		p.Year = year.String()
	}
	p.Details = parseDetails(doc.Get("details"))
	return nil
}

// Detail is a single key/value entry of a project's details
type Detail struct {
	Key   string
	Value string
}

// Details is an ordered set of project attributes
type Details []Detail

// Get returns the value stored under key
func (d Details) Get(key string) (string, bool) {
	for _, entry := range d {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return "", false
}

// Value returns the value under key, or "" if absent
func (d Details) Value(key string) string {
	v, _ := d.Get(key)
	return v
}

// MarshalJSON writes the details as an object in their stored order
func (d Details) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(entry.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(entry.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// parseDetails walks a details object in source order. A repeated key keeps
// its first position and its last value.
func parseDetails(obj gjson.Result) Details {
	if !obj.IsObject() {
		return nil
	}
	details := Details{}
	index := make(map[string]int)
	obj.ForEach(func(key, value gjson.Result) bool {
		text := value.String()
		if value.Type == gjson.Null {
			text = ""
		}
		if i, seen := index[key.String()]; seen {
			details[i].Value = text
			return true
		}
		index[key.String()] = len(details)
		details = append(details, Detail{Key: key.String(), Value: text})
		return true
	})
	return details
}
