package types

import "fmt"

type ContentKind int

const (
	ContentKindArtist ContentKind = iota
	ContentKindTrack
	ContentKindPlaylist
	ContentKindAlbum
)

func (k ContentKind) String() string {
	switch k {
	case ContentKindArtist:
		return "artist"
	case ContentKindTrack:
		return "track"
	case ContentKindPlaylist:
		return "playlist"
	case ContentKindAlbum:
		return "album"
	}

	return "unknown"
}

// ArchiveLabel is the kind word used in suggested archive filenames.
func (k ContentKind) ArchiveLabel() string {
	if k == ContentKindArtist {
		return "profile"
	}

	return k.String()
}

func ParseContentKind(s string) (ContentKind, error) {
	switch s {
	case "artist":
		return ContentKindArtist, nil
	case "track":
		return ContentKindTrack, nil
	case "playlist":
		return ContentKindPlaylist, nil
	case "album":
		return ContentKindAlbum, nil
	default:
		return 0, fmt.Errorf("unknown content kind: %q", s)
	}
}
