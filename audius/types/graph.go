package types

import (
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// ResolvedGraph is the fully hydrated result of one resolution run. For
// content downloads exactly one of the single track and the single playlist
// is populated; artist downloads carry the profile plus both sequences.
// Entities never outlive the archive build that produced them.
type ResolvedGraph struct {
	Kind      ContentKind
	Profile   *Artist
	Tracks    []Track
	Playlists []Playlist
}

// RootName names the entity the archive is titled after: the single track or
// playlist for content downloads, the profile for artist downloads.
func (g *ResolvedGraph) RootName() string {
	switch g.Kind {
	case ContentKindTrack:
		if len(g.Tracks) == 1 && g.Tracks[0].Title != "" {
			return g.Tracks[0].Title
		}
	case ContentKindPlaylist, ContentKindAlbum:
		if len(g.Playlists) == 1 && g.Playlists[0].PlaylistName != "" {
			return g.Playlists[0].PlaylistName
		}
	case ContentKindArtist:
		if g.Profile != nil {
			if g.Profile.Name != "" {
				return g.Profile.Name
			}

			return g.Profile.Handle
		}
	}

	return "untitled"
}

func (g *ResolvedGraph) ToDict() *zerolog.Event {
	e := zerolog.
		Dict().
		Str("kind", g.Kind.String()).
		Strs("track_ids", lo.Map(g.Tracks, func(t Track, _ int) string { return t.ID }))
	if g.Profile != nil {
		e = e.Dict("profile", g.Profile.ToDict())
	}

	return e
}
