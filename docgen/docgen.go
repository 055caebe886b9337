// Package docgen renders a hydrated content graph into a markdown report and
// an equivalent hypertext document. Both renderings come from one internal
// markdown pass; the hypertext form is derived from the markdown bytes and is
// never maintained as a separate template.
package docgen

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"snag/audius/types"
	"snag/constant"
)

const (
	placeholderNA            = "N/A"
	placeholderUnknownArtist = "Unknown Artist"
	placeholderUnknownHandle = "unknown"
	dateLayout               = "January 2, 2006"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Documents is the synchronized rendering pair for one entity.
type Documents struct {
	Name     string
	Markdown []byte
	HTML     []byte
}

func Render(graph *types.ResolvedGraph) (*Documents, error) {
	var (
		name string
		md   string
	)
	switch graph.Kind {
	case types.ContentKindArtist:
		name = graph.RootName()
		md = artistMarkdown(graph)
	case types.ContentKindTrack:
		if len(graph.Tracks) != 1 {
			return nil, fmt.Errorf("track graph must carry exactly one track, got %d", len(graph.Tracks))
		}

		name = graph.RootName()
		md = trackMarkdown(graph.Tracks[0], graph.Profile)
	case types.ContentKindPlaylist, types.ContentKindAlbum:
		if len(graph.Playlists) != 1 {
			return nil, fmt.Errorf("playlist graph must carry exactly one playlist, got %d", len(graph.Playlists))
		}

		name = graph.RootName()
		md = playlistMarkdown(graph.Playlists[0], graph.Tracks, graph.Profile)
	default:
		return nil, fmt.Errorf("unexpected graph kind: %s", graph.Kind)
	}

	htmlDoc, err := markdownToHTML(name, md)
	if nil != err {
		return nil, fmt.Errorf("failed to derive hypertext rendering: %w", err)
	}

	return &Documents{Name: name, Markdown: []byte(md), HTML: htmlDoc}, nil
}

// RenderTrack produces the per-member document pair used inside multi-track
// exports.
func RenderTrack(track types.Track) (*Documents, error) {
	name := coalesce(track.Title, "Untitled Track")
	md := trackMarkdown(track, track.User)

	htmlDoc, err := markdownToHTML(name, md)
	if nil != err {
		return nil, fmt.Errorf("failed to derive hypertext rendering: %w", err)
	}

	return &Documents{Name: name, Markdown: []byte(md), HTML: htmlDoc}, nil
}

func artistMarkdown(graph *types.ResolvedGraph) string {
	profile := graph.Profile

	var md []string

	verifiedBadge := ""
	if profile.IsVerified {
		verifiedBadge = " ✓"
	}
	md = append(md,
		"# "+coalesce(profile.Name, profile.Handle)+verifiedBadge,
		"**@"+coalesce(profile.Handle, placeholderUnknownHandle)+"**",
		"User ID: `"+coalesce(profile.ID, placeholderNA)+"`",
		"",
	)

	if profile.Bio != "" {
		md = append(md, "## Bio", profile.Bio, "")
	}

	if profile.Location != "" {
		md = append(md, "## Location", profile.Location, "")
	}

	md = append(md,
		"## Stats",
		"- Followers: "+count(profile.FollowerCount),
		"- Following: "+count(profile.FolloweeCount),
		"- Tracks: "+count(profile.TrackCount),
		"- Playlists: "+count(profile.PlaylistCount),
		"- Albums: "+count(profile.AlbumCount),
		"- Reposts: "+count(profile.RepostCount),
		"- Supporters: "+count(profile.SupporterCount),
		"- Supporting: "+count(profile.SupportingCount),
		"",
	)

	var socials []string
	if profile.TwitterHandle != "" {
		socials = append(socials, fmt.Sprintf("- Twitter: [@%s](https://twitter.com/%s)", profile.TwitterHandle, profile.TwitterHandle))
	}
	if profile.InstagramHandle != "" {
		socials = append(socials, fmt.Sprintf("- Instagram: [@%s](https://instagram.com/%s)", profile.InstagramHandle, profile.InstagramHandle))
	}
	if profile.TikTokHandle != "" {
		socials = append(socials, fmt.Sprintf("- TikTok: [@%s](https://tiktok.com/@%s)", profile.TikTokHandle, profile.TikTokHandle))
	}
	if profile.Website != "" {
		socials = append(socials, fmt.Sprintf("- Website: [%s](%s)", profile.Website, profile.Website))
	}
	if profile.Donation != "" {
		socials = append(socials, fmt.Sprintf("- Donation: [%s](%s)", profile.Donation, profile.Donation))
	}
	if len(socials) > 0 {
		md = append(md, "## Social Links")
		md = append(md, socials...)
		md = append(md, "")
	}

	var wallets []string
	if profile.ERCWallet != "" {
		wallets = append(wallets, "- ERC: `"+profile.ERCWallet+"`")
	}
	if profile.SPLWallet != "" {
		wallets = append(wallets, "- SPL: `"+profile.SPLWallet+"`")
	}
	if profile.SPLUSDCPayoutWallet != "" {
		wallets = append(wallets, "- SPL USDC: `"+profile.SPLUSDCPayoutWallet+"`")
	}
	if len(wallets) > 0 {
		md = append(md, "## Wallets")
		md = append(md, wallets...)
		md = append(md, "")
	}

	if len(graph.Tracks) > 0 {
		md = append(md, "## Tracks")
		md = append(md, trackListLines(graph.Tracks, true)...)
		md = append(md, "")
	}

	if len(graph.Playlists) > 0 {
		md = append(md, "## Playlists")
		for i, p := range graph.Playlists {
			md = append(md, fmt.Sprintf("%d. %s (%s tracks)", i+1, coalesce(p.PlaylistName, "Untitled Playlist"), count(p.TrackCount)))
		}
		md = append(md, "")
	}

	if created := formatDate(profile.CreatedAt); created != placeholderNA {
		md = append(md, "Created: "+created)
	}
	if profile.IsDeactivated {
		md = append(md, "Status: Deactivated")
	}
	if profile.IsAvailable != nil && !*profile.IsAvailable {
		md = append(md, "Status: Unavailable")
	}

	return strings.Join(md, "\n") + "\n"
}

func trackMarkdown(track types.Track, profile *types.Artist) string {
	if profile == nil {
		profile = track.User
	}

	var (
		artistName   = placeholderUnknownArtist
		artistHandle = placeholderUnknownHandle
	)
	if profile != nil {
		artistName = coalesce(profile.Name, coalesce(profile.Handle, placeholderUnknownArtist))
		artistHandle = coalesce(profile.Handle, placeholderUnknownHandle)
	}

	md := []string{
		"# " + coalesce(track.Title, "Untitled Track"),
		"**By " + artistName + "**",
		"",
		"## Track Information",
		fmt.Sprintf("- Artist: %s (@%s)", artistName, artistHandle),
		"- Genre: " + coalesce(track.Genre, placeholderNA),
		"- Mood: " + coalesce(track.Mood, placeholderNA),
		"- Release Date: " + formatDate(track.ReleaseDate),
		"- Duration: " + formatDuration(track.Duration),
		"",
		"## Stats",
		"- Plays: " + count(track.PlayCount),
		"- Reposts: " + count(track.RepostCount),
		"- Favorites: " + count(track.FavoriteCount),
		"",
		"## Links",
		fmt.Sprintf("- [Audius Link](%s%s)", constant.WebBaseURL, track.Permalink),
	}

	return strings.Join(md, "\n") + "\n"
}

func playlistMarkdown(playlist types.Playlist, tracks []types.Track, profile *types.Artist) string {
	if profile == nil {
		profile = playlist.User
	}

	var (
		artistName   = placeholderUnknownArtist
		artistHandle = placeholderUnknownHandle
	)
	if profile != nil {
		artistName = coalesce(profile.Name, coalesce(profile.Handle, placeholderUnknownArtist))
		artistHandle = coalesce(profile.Handle, placeholderUnknownHandle)
	}

	kindWord := "Playlist"
	if playlist.IsAlbum {
		kindWord = "Album"
	}

	md := []string{
		"# " + coalesce(playlist.PlaylistName, "Untitled Playlist"),
		"**By " + artistName + "**",
		"",
		"## Playlist Information",
		"- Type: " + kindWord,
		fmt.Sprintf("- Artist: %s (@%s)", artistName, artistHandle),
		"- Track Count: " + count(playlist.TrackCount),
		"- Description: " + coalesce(playlist.Description, "No description available"),
		"",
		"## Stats",
		"- Plays: " + count(playlist.TotalPlayCount),
		"- Reposts: " + count(playlist.RepostCount),
		"- Favorites: " + count(playlist.FavoriteCount),
		"",
		"## Links",
		fmt.Sprintf("- [Audius Link](%s%s)", constant.WebBaseURL, playlist.Permalink),
	}

	if len(tracks) > 0 {
		md = append(md, "", "## Track List")
		md = append(md, trackListLines(tracks, true)...)
	}

	return strings.Join(md, "\n") + "\n"
}

// trackListLines enumerates members 1-based in hydration order. withUploader
// adds each member's own uploader link, used in artist and playlist documents.
func trackListLines(tracks []types.Track, withUploader bool) []string {
	lines := make([]string, len(tracks))
	for i, t := range tracks {
		line := fmt.Sprintf("%d. %s (%s)", i+1, coalesce(t.Title, "Untitled Track"), formatDuration(t.Duration))
		if withUploader && t.User != nil && t.User.Handle != "" {
			line += fmt.Sprintf(" by [@%s](%s/%s)", t.User.Handle, constant.WebBaseURL, t.User.Handle)
		}
		lines[i] = line
	}

	return lines
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}

	return v
}

func count(n int) string {
	return printer.Sprintf("%d", n)
}

func formatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

var dateInputLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// formatDate renders a fixed long-form calendar date. Unparsable input
// yields the N/A placeholder instead of an error.
func formatDate(s string) string {
	if s == "" {
		return placeholderNA
	}

	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, s); nil == err {
			return t.Format(dateLayout)
		}
	}

	return placeholderNA
}
