package types

import (
	"fmt"
	"regexp"
	"strings"
)

// InvalidIdentifierError reports an identifier whose shape cannot belong to
// the declared content kind. It is raised before any network call is made.
type InvalidIdentifierError struct {
	Raw    string
	Reason string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid %q identifier: %s", e.Raw, e.Reason)
}

var idPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// ContentID is the classified form of a path-shaped identifier. Exactly one
// of the direct-ID and permalink forms is populated. Immutable once parsed.
type ContentID struct {
	Kind   ContentKind
	ID     string
	Handle string
	Slug   string
}

// IsDirect reports whether the identifier is a bare alphanumeric entity ID.
func (c ContentID) IsDirect() bool {
	return c.ID != ""
}

// Permalink renders the path-shaped form, without a leading slash.
func (c ContentID) Permalink() string {
	switch c.Kind {
	case ContentKindArtist:
		return c.Handle
	case ContentKindTrack:
		return c.Handle + "/" + c.Slug
	case ContentKindPlaylist, ContentKindAlbum:
		return c.Handle + "/" + c.Kind.String() + "/" + c.Slug
	}

	return ""
}

func ParseContentID(raw string, kind ContentKind) (ContentID, error) {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return ContentID{}, &InvalidIdentifierError{Raw: raw, Reason: "empty identifier"} //nolint:exhaustruct
	}

	switch kind {
	case ContentKindArtist:
		if strings.Contains(trimmed, "/") {
			return ContentID{}, &InvalidIdentifierError{Raw: raw, Reason: "artist handle must be a single path segment"} //nolint:exhaustruct
		}

		return ContentID{Kind: kind, Handle: trimmed}, nil //nolint:exhaustruct
	case ContentKindTrack:
		if idPattern.MatchString(trimmed) {
			return ContentID{Kind: kind, ID: trimmed}, nil //nolint:exhaustruct
		}

		parts := strings.Split(trimmed, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return ContentID{}, &InvalidIdentifierError{Raw: raw, Reason: "track permalink must be artist/slug"} //nolint:exhaustruct
		}

		return ContentID{Kind: kind, Handle: parts[0], Slug: parts[1]}, nil //nolint:exhaustruct
	case ContentKindPlaylist, ContentKindAlbum:
		if idPattern.MatchString(trimmed) {
			return ContentID{Kind: kind, ID: trimmed}, nil //nolint:exhaustruct
		}

		parts := strings.Split(trimmed, "/")
		if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
			return ContentID{}, &InvalidIdentifierError{Raw: raw, Reason: "playlist permalink must be artist/kind/slug"} //nolint:exhaustruct
		}

		if marker := parts[1]; marker != "album" && marker != "playlist" {
			return ContentID{}, &InvalidIdentifierError{Raw: raw, Reason: "kind marker must be album or playlist, got: " + marker} //nolint:exhaustruct
		}

		return ContentID{Kind: kind, Handle: parts[0], Slug: parts[2]}, nil //nolint:exhaustruct
	default:
		return ContentID{}, &InvalidIdentifierError{Raw: raw, Reason: "unknown content kind"} //nolint:exhaustruct
	}
}
