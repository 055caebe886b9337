package docgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snag/audius/types"
	"snag/docgen"
)

func emptyProfile() *types.Artist {
	//nolint:exhaustruct
	return &types.Artist{
		ID:     "u1",
		Handle: "artisthandle",
	}
}

func TestArtistDocumentWithEmptyProfile(t *testing.T) {
	t.Parallel()

	graph := &types.ResolvedGraph{
		Kind:      types.ContentKindArtist,
		Profile:   emptyProfile(),
		Tracks:    nil,
		Playlists: nil,
	}

	docs, err := docgen.Render(graph)
	require.NoError(t, err)

	md := string(docs.Markdown)
	assert.Contains(t, md, "# artisthandle")
	assert.Contains(t, md, "Followers: 0")
	assert.Contains(t, md, "Following: 0")
	assert.NotContains(t, md, "## Bio")
	assert.NotContains(t, md, "## Location")
	assert.NotContains(t, md, "## Social Links")
}

func TestArtistDocumentFullProfile(t *testing.T) {
	t.Parallel()

	available := false
	//nolint:exhaustruct
	profile := &types.Artist{
		ID:              "u1",
		Handle:          "artisthandle",
		Name:            "The Artist",
		Bio:             "Making noise since 2019.",
		Location:        "Berlin",
		FollowerCount:   1234567,
		TrackCount:      42,
		IsVerified:      true,
		IsAvailable:     &available,
		CreatedAt:       "2021-05-14T15:47:05Z",
		TwitterHandle:   "artist",
		ERCWallet:       "0xabc",
		SupporterCount:  12,
		SupportingCount: 3,
	}
	graph := &types.ResolvedGraph{
		Kind:    types.ContentKindArtist,
		Profile: profile,
		Tracks: []types.Track{
			{ID: "t1", Title: "One", Duration: 61, User: profile}, //nolint:exhaustruct
		},
		Playlists: nil,
	}

	docs, err := docgen.Render(graph)
	require.NoError(t, err)

	md := string(docs.Markdown)
	assert.Contains(t, md, "# The Artist ✓")
	assert.Contains(t, md, "## Bio")
	assert.Contains(t, md, "Making noise since 2019.")
	assert.Contains(t, md, "- Followers: 1,234,567")
	assert.Contains(t, md, "- Twitter: [@artist](https://twitter.com/artist)")
	assert.Contains(t, md, "- ERC: `0xabc`")
	assert.Contains(t, md, "Created: May 14, 2021")
	assert.Contains(t, md, "Status: Unavailable")
	assert.Contains(t, md, "1. One (1:01) by [@artisthandle](https://audius.co/artisthandle)")
}

func TestTrackDocumentPlaceholders(t *testing.T) {
	t.Parallel()

	graph := &types.ResolvedGraph{
		Kind:    types.ContentKindTrack,
		Profile: nil,
		Tracks: []types.Track{
			{ID: "t1", Duration: 0}, //nolint:exhaustruct
		},
		Playlists: nil,
	}

	docs, err := docgen.Render(graph)
	require.NoError(t, err)

	md := string(docs.Markdown)
	assert.Contains(t, md, "# Untitled Track")
	assert.Contains(t, md, "**By Unknown Artist**")
	assert.Contains(t, md, "- Genre: N/A")
	assert.Contains(t, md, "- Mood: N/A")
	assert.Contains(t, md, "- Release Date: N/A")
	assert.Contains(t, md, "- Duration: 0:00")
	assert.Contains(t, md, "- Plays: 0")
}

func TestPlaylistDocumentTrackList(t *testing.T) {
	t.Parallel()

	//nolint:exhaustruct
	uploader := &types.Artist{Handle: "member", Name: "Member"}
	graph := &types.ResolvedGraph{
		Kind:    types.ContentKindAlbum,
		Profile: &types.Artist{Handle: "owner", Name: "Owner"}, //nolint:exhaustruct
		Tracks: []types.Track{
			{ID: "t1", Title: "First", Duration: 65, User: uploader},   //nolint:exhaustruct
			{ID: "t2", Title: "Second", Duration: 125, User: uploader}, //nolint:exhaustruct
		},
		Playlists: []types.Playlist{
			{ID: "pl1", PlaylistName: "My Album", IsAlbum: true, TrackCount: 2}, //nolint:exhaustruct
		},
	}

	docs, err := docgen.Render(graph)
	require.NoError(t, err)

	md := string(docs.Markdown)
	assert.Contains(t, md, "# My Album")
	assert.Contains(t, md, "- Type: Album")
	assert.Contains(t, md, "- Description: No description available")
	assert.Contains(t, md, "## Track List")
	assert.Contains(t, md, "1. First (1:05) by [@member](https://audius.co/member)")
	assert.Contains(t, md, "2. Second (2:05) by [@member](https://audius.co/member)")
}

func TestRenderIsIdempotent(t *testing.T) {
	t.Parallel()

	graph := &types.ResolvedGraph{
		Kind:    types.ContentKindTrack,
		Profile: &types.Artist{Handle: "h", Name: "Name"}, //nolint:exhaustruct
		Tracks: []types.Track{
			{ID: "t1", Title: "Song", Duration: 204, PlayCount: 1000}, //nolint:exhaustruct
		},
		Playlists: nil,
	}

	first, err := docgen.Render(graph)
	require.NoError(t, err)
	second, err := docgen.Render(graph)
	require.NoError(t, err)

	assert.Equal(t, first.Markdown, second.Markdown)
	assert.Equal(t, first.HTML, second.HTML)
}

func TestHTMLDerivedFromMarkdown(t *testing.T) {
	t.Parallel()

	graph := &types.ResolvedGraph{
		Kind:    types.ContentKindTrack,
		Profile: &types.Artist{Handle: "h", Name: "Name"}, //nolint:exhaustruct
		Tracks: []types.Track{
			{ID: "t1", Title: "Song", Permalink: "/h/song"}, //nolint:exhaustruct
		},
		Playlists: nil,
	}

	docs, err := docgen.Render(graph)
	require.NoError(t, err)

	html := string(docs.HTML)
	assert.Contains(t, html, "<h1>Song</h1>")
	assert.Contains(t, html, "<h2>Stats</h2>")
	assert.Contains(t, html, `<a href="https://audius.co/h/song">Audius Link</a>`)
	assert.Contains(t, html, "<strong>By Name</strong>")
}

func TestRenderTrackMember(t *testing.T) {
	t.Parallel()

	//nolint:exhaustruct
	track := types.Track{
		ID:       "t1",
		Title:    "Member Song",
		Duration: 59,
		User:     &types.Artist{Handle: "m", Name: "M"}, //nolint:exhaustruct
	}

	docs, err := docgen.RenderTrack(track)
	require.NoError(t, err)
	assert.Equal(t, "Member Song", docs.Name)
	assert.Contains(t, string(docs.Markdown), "- Duration: 0:59")
	assert.Contains(t, string(docs.Markdown), "- Artist: M (@m)")
}

func TestUnparsableDateYieldsPlaceholder(t *testing.T) {
	t.Parallel()

	graph := &types.ResolvedGraph{
		Kind:    types.ContentKindTrack,
		Profile: &types.Artist{Handle: "h"}, //nolint:exhaustruct
		Tracks: []types.Track{
			{ID: "t1", Title: "Song", ReleaseDate: "who knows"}, //nolint:exhaustruct
		},
		Playlists: nil,
	}

	docs, err := docgen.Render(graph)
	require.NoError(t, err)
	assert.Contains(t, string(docs.Markdown), "- Release Date: N/A")
}
