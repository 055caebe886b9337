package types

import (
	"bytes"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Picture is an image reference as the API delivers it: either a single URL
// string or a map of size labels to URLs. Non-string map values are kept so
// quality selection can skip them.
type Picture struct {
	Direct   string
	Variants map[string]any
}

func (p *Picture) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '"' {
		return json.Unmarshal(trimmed, &p.Direct)
	}

	return json.Unmarshal(trimmed, &p.Variants)
}

func (p Picture) IsZero() bool {
	return p.Direct == "" && len(p.Variants) == 0
}

// Artist is a user profile record. Fields the engine inspects are typed;
// the full response bytes are preserved in Raw for verbatim manifest embedding.
type Artist struct {
	ID       string `json:"id"`
	Handle   string `json:"handle"`
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	Location string `json:"location"`

	ProfilePicture Picture `json:"profile_picture"`
	CoverPhoto     Picture `json:"cover_photo"`

	FollowerCount   int `json:"follower_count"`
	FolloweeCount   int `json:"followee_count"`
	TrackCount      int `json:"track_count"`
	PlaylistCount   int `json:"playlist_count"`
	AlbumCount      int `json:"album_count"`
	RepostCount     int `json:"repost_count"`
	SupporterCount  int `json:"supporter_count"`
	SupportingCount int `json:"supporting_count"`

	IsVerified    bool  `json:"is_verified"`
	IsDeactivated bool  `json:"is_deactivated"`
	IsAvailable   *bool `json:"is_available"`

	CreatedAt       string `json:"created_at"`
	TwitterHandle   string `json:"twitter_handle"`
	InstagramHandle string `json:"instagram_handle"`
	TikTokHandle    string `json:"tiktok_handle"`
	Website         string `json:"website"`
	Donation        string `json:"donation"`

	ERCWallet           string `json:"erc_wallet"`
	SPLWallet           string `json:"spl_wallet"`
	SPLUSDCPayoutWallet string `json:"spl_usdc_payout_wallet"`

	Raw json.RawMessage `json:"-"`
}

func (a *Artist) UnmarshalJSON(b []byte) error {
	type alias Artist
	var v alias
	if err := json.Unmarshal(b, &v); nil != err {
		return err
	}

	*a = Artist(v)
	a.Raw = bytes.Clone(b)

	return nil
}

func (a *Artist) ToDict() *zerolog.Event {
	return zerolog.
		Dict().
		Str("id", a.ID).
		Str("handle", a.Handle).
		Str("name", a.Name).
		Int("track_count", a.TrackCount).
		Int("playlist_count", a.PlaylistCount)
}

type Track struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Genre       string `json:"genre"`
	Mood        string `json:"mood"`
	ReleaseDate string `json:"release_date"`
	Permalink   string `json:"permalink"`
	Duration    int    `json:"duration"`

	PlayCount     int `json:"play_count"`
	RepostCount   int `json:"repost_count"`
	FavoriteCount int `json:"favorite_count"`

	Artwork Picture `json:"artwork"`
	User    *Artist `json:"user"`

	Raw json.RawMessage `json:"-"`
}

func (t *Track) UnmarshalJSON(b []byte) error {
	type alias Track
	var v alias
	if err := json.Unmarshal(b, &v); nil != err {
		return err
	}

	*t = Track(v)
	t.Raw = bytes.Clone(b)

	return nil
}

func (t *Track) ToDict() *zerolog.Event {
	return zerolog.
		Dict().
		Str("id", t.ID).
		Str("title", t.Title).
		Int("duration", t.Duration)
}

type Playlist struct {
	ID           string `json:"id"`
	PlaylistName string `json:"playlist_name"`
	Description  string `json:"description"`
	IsAlbum      bool   `json:"is_album"`
	TrackCount   int    `json:"track_count"`
	Permalink    string `json:"permalink"`

	TotalPlayCount int `json:"total_play_count"`
	RepostCount    int `json:"repost_count"`
	FavoriteCount  int `json:"favorite_count"`

	Artwork Picture `json:"artwork"`
	User    *Artist `json:"user"`

	Raw json.RawMessage `json:"-"`
}

func (p *Playlist) UnmarshalJSON(b []byte) error {
	type alias Playlist
	var v alias
	if err := json.Unmarshal(b, &v); nil != err {
		return err
	}

	*p = Playlist(v)
	p.Raw = bytes.Clone(b)

	return nil
}

func (p *Playlist) ToDict() *zerolog.Event {
	return zerolog.
		Dict().
		Str("id", p.ID).
		Str("name", p.PlaylistName).
		Bool("is_album", p.IsAlbum).
		Int("track_count", p.TrackCount)
}
