package models

// Protection says which user affordances are suppressed on a media element
type Protection struct {
	NoDrag        bool
	NoContextMenu bool
}

// ProtectionFor is the single media protection policy of the site. Images
// and videos are neither draggable nor offered a context menu; the media
// viewer applies the image policy to its canvas. Items of an unknown type
// are never rendered and get no protection.
func ProtectionFor(m MediaItem) Protection {
	switch m.Type {
	case MediaImage:
		return Protection{NoDrag: true, NoContextMenu: true}
	case MediaVideo:
		return Protection{NoDrag: true, NoContextMenu: true}
	}
	return Protection{}
}
