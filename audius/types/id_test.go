package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snag/audius/types"
)

func TestParseContentID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		raw        string
		kind       types.ContentKind
		wantDirect bool
		wantHandle string
		wantSlug   string
	}{
		{
			name:       "bare alphanumeric track id",
			raw:        "D7KyD",
			kind:       types.ContentKindTrack,
			wantDirect: true,
		},
		{
			name:       "track permalink",
			raw:        "artisthandle/my-track",
			kind:       types.ContentKindTrack,
			wantHandle: "artisthandle",
			wantSlug:   "my-track",
		},
		{
			name:       "track permalink with surrounding slashes",
			raw:        "/artisthandle/my-track/",
			kind:       types.ContentKindTrack,
			wantHandle: "artisthandle",
			wantSlug:   "my-track",
		},
		{
			name:       "bare playlist id",
			raw:        "nkpXe",
			kind:       types.ContentKindPlaylist,
			wantDirect: true,
		},
		{
			name:       "album permalink",
			raw:        "artisthandle/album/my-album",
			kind:       types.ContentKindAlbum,
			wantHandle: "artisthandle",
			wantSlug:   "my-album",
		},
		{
			name:       "playlist permalink",
			raw:        "artisthandle/playlist/summer-mix",
			kind:       types.ContentKindPlaylist,
			wantHandle: "artisthandle",
			wantSlug:   "summer-mix",
		},
		{
			name:       "artist handle",
			raw:        "artisthandle",
			kind:       types.ContentKindArtist,
			wantHandle: "artisthandle",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			cid, err := types.ParseContentID(test.raw, test.kind)
			require.NoError(t, err)
			assert.Equal(t, test.wantDirect, cid.IsDirect())
			assert.Equal(t, test.wantHandle, cid.Handle)
			assert.Equal(t, test.wantSlug, cid.Slug)
			assert.Equal(t, test.kind, cid.Kind)
		})
	}
}

func TestParseContentIDInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		kind types.ContentKind
	}{
		{name: "empty identifier", raw: "", kind: types.ContentKindTrack},
		{name: "artist handle with slash", raw: "a/b", kind: types.ContentKindArtist},
		{name: "track permalink with too many segments", raw: "a/b/c", kind: types.ContentKindTrack},
		{name: "playlist permalink with two segments", raw: "artist/my-album", kind: types.ContentKindAlbum},
		{name: "playlist permalink with four segments", raw: "a/album/b/c", kind: types.ContentKindAlbum},
		{name: "playlist kind marker outside album and playlist", raw: "artist/mixtape/my-album", kind: types.ContentKindAlbum},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := types.ParseContentID(test.raw, test.kind)
			var invalidErr *types.InvalidIdentifierError
			require.ErrorAs(t, err, &invalidErr)
		})
	}
}

func TestContentIDPermalink(t *testing.T) {
	t.Parallel()

	cid, err := types.ParseContentID("artist/album/my-album", types.ContentKindAlbum)
	require.NoError(t, err)
	assert.Equal(t, "artist/album/my-album", cid.Permalink())

	cid, err = types.ParseContentID("artist/my-track", types.ContentKindTrack)
	require.NoError(t, err)
	assert.Equal(t, "artist/my-track", cid.Permalink())
}

func TestPictureUnmarshal(t *testing.T) {
	t.Parallel()

	var track types.Track

	body := []byte(`{"id":"t1","title":"Song","artwork":{"150x150":"https://img/150.jpg","1000x1000":"https://img/1000.jpg"}}`)
	require.NoError(t, track.UnmarshalJSON(body))
	assert.Empty(t, track.Artwork.Direct)
	assert.Equal(t, "https://img/1000.jpg", track.Artwork.Variants["1000x1000"])

	var direct types.Track
	require.NoError(t, direct.UnmarshalJSON([]byte(`{"id":"t2","artwork":"https://img/only.jpg"}`)))
	assert.Equal(t, "https://img/only.jpg", direct.Artwork.Direct)

	var absent types.Track
	require.NoError(t, absent.UnmarshalJSON([]byte(`{"id":"t3","artwork":null}`)))
	assert.True(t, absent.Artwork.IsZero())
}

func TestEntityRawPassthrough(t *testing.T) {
	t.Parallel()

	body := []byte(`{"id":"u1","handle":"h","some_future_field":{"a":1}}`)
	var artist types.Artist
	require.NoError(t, artist.UnmarshalJSON(body))
	assert.JSONEq(t, string(body), string(artist.Raw))
}
