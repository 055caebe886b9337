// Package engine wires resolution, hydration, document generation, asset
// fetching and archive assembly into the single resolve-and-build operation
// exposed to callers.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"snag/archive"
	"snag/audius"
	"snag/audius/types"
	"snag/config"
	"snag/docgen"
	"snag/fetcher"
	"snag/must"
	"snag/ratelimit"
)

// Result is returned on the success path. Asset-fetch failures degrade to
// Warnings instead of overloading the error path; a non-empty Warnings list
// means the archive was produced with images not fully downloaded.
type Result struct {
	Archive  []byte
	Filename string
	Files    []string
	Warnings []string
}

type Engine struct {
	hydrator *audius.Hydrator
	fetcher  *fetcher.Fetcher
	builder  *archive.Builder
	now      func() time.Time
}

func New(conf *config.Config) *Engine {
	client := audius.NewClient(conf.API)

	return &Engine{
		hydrator: audius.NewHydrator(client),
		fetcher:  fetcher.New(conf.Fetcher),
		builder:  archive.NewBuilder(conf.Archive),
		now:      time.Now,
	}
}

// rootAsset is one top-level image slot. Slots are allocated before the
// concurrent phase so every branch writes to disjoint memory.
type rootAsset struct {
	suffix string
	url    string
	label  string
	body   []byte
}

// Build resolves an identifier, hydrates its graph, renders documents and
// fetches assets concurrently, and assembles the archive. Resolution and
// hydration errors are fatal and propagate unmodified.
func (e *Engine) Build(ctx context.Context, logger zerolog.Logger, rawID string, kind types.ContentKind, page audius.PageParams) (*Result, error) {
	cid, err := types.ParseContentID(rawID, kind)
	if nil != err {
		return nil, err
	}

	logger = logger.With().Str("identifier", rawID).Str("kind", kind.String()).Logger()

	graph, err := e.hydrator.Graph(ctx, logger, cid, page)
	if nil != err {
		return nil, err
	}

	logger.Info().Dict("graph", graph.ToDict()).Msg("Graph hydrated")

	var (
		rootDocs   *docgen.Documents
		members    = memberTracks(graph)
		memberDocs = make([]*docgen.Documents, len(members))
		memberArt  = make([][]byte, len(members))
		assets     = rootAssetSlots(graph)
		wg, wgCtx  = errgroup.WithContext(ctx)
	)

	wg.Go(func() error {
		docs, err := docgen.Render(graph)
		if nil != err {
			return fmt.Errorf("failed to render documents: %w", err)
		}

		rootDocs = docs

		for i, track := range members {
			docs, err := docgen.RenderTrack(track)
			if nil != err {
				return fmt.Errorf("failed to render member track document: %w", err)
			}

			memberDocs[i] = docs
		}

		return nil
	})

	fetchWg, fetchCtx := errgroup.WithContext(wgCtx)
	fetchWg.SetLimit(ratelimit.AssetDownloadConcurrency)
	for i := range assets {
		fetchWg.Go(func() error {
			assets[i].body = e.fetcher.Fetch(fetchCtx, logger, assets[i].url)
			return nil
		})
	}
	for i, track := range members {
		artworkURL := fetcher.Pick(track.Artwork)
		if artworkURL == "" {
			continue
		}

		fetchWg.Go(func() error {
			memberArt[i] = e.fetcher.Fetch(fetchCtx, logger, artworkURL)
			return nil
		})
	}
	wg.Go(fetchWg.Wait)

	if err := wg.Wait(); nil != err {
		return nil, err
	}

	var (
		entries  []archive.Entry
		warnings []string
		docName  = archive.SanitizeName(rootDocs.Name)
	)

	entries = append(entries,
		archive.Entry{Path: docName + " Details.md", Body: rootDocs.Markdown},
		archive.Entry{Path: docName + " Details.html", Body: rootDocs.HTML},
	)

	for _, a := range assets {
		if a.body == nil {
			warnings = append(warnings, a.label+" could not be downloaded")
			continue
		}

		entries = append(entries, archive.Entry{
			Path: docName + "_" + a.suffix + ".jpg",
			Body: a.body,
		})
	}

	for i, track := range members {
		var (
			trackName = archive.SanitizeName(memberDocs[i].Name)
			folder    = fmt.Sprintf("tracks/%02d - %s/", i+1, trackName)
		)
		entries = append(entries,
			archive.Entry{Path: folder + trackName + " Details.md", Body: memberDocs[i].Markdown},
			archive.Entry{Path: folder + trackName + " Details.html", Body: memberDocs[i].HTML},
		)

		if memberArt[i] != nil {
			entries = append(entries, archive.Entry{
				Path: folder + trackName + "_artwork.jpg",
				Body: memberArt[i],
			})
		} else if fetcher.Pick(track.Artwork) != "" {
			warnings = append(warnings, fmt.Sprintf("artwork for track %q could not be downloaded", memberDocs[i].Name))
		}
	}

	blob, err := e.builder.Build(logger, e.manifest(graph), entries)
	if nil != err {
		return nil, fmt.Errorf("failed to build archive: %w", err)
	}

	files := make([]string, 0, len(entries)+1)
	files = append(files, archive.ManifestFileName)
	for _, entry := range entries {
		files = append(files, entry.Path)
	}

	if len(warnings) > 0 {
		logger.Warn().Strs("warnings", warnings).Msg("Archive produced with images not fully downloaded")
	}

	return &Result{
		Archive:  blob,
		Filename: archive.SuggestedFilename(rootDocs.Name, graph.Kind),
		Files:    files,
		Warnings: warnings,
	}, nil
}

func (e *Engine) manifest(graph *types.ResolvedGraph) archive.Manifest {
	var content json.RawMessage
	switch graph.Kind {
	case types.ContentKindTrack:
		must.Be(len(graph.Tracks) == 1, "track graph carries exactly one track")
		content = graph.Tracks[0].Raw
	case types.ContentKindPlaylist, types.ContentKindAlbum:
		must.Be(len(graph.Playlists) == 1, "playlist graph carries exactly one playlist")
		content = graph.Playlists[0].Raw
	case types.ContentKindArtist:
		must.Be(graph.Profile != nil, "artist graph carries a profile")
		content = graph.Profile.Raw
	}

	artist := json.RawMessage("null")
	if graph.Profile != nil {
		artist = graph.Profile.Raw
	}

	return archive.Manifest{
		Type:      graph.Kind.String(),
		Content:   content,
		Artist:    artist,
		Timestamp: e.now().UTC().Format(time.RFC3339),
	}
}

// memberTracks lists the tracks that get their own nested document and
// artwork: playlist members and an artist's full-content export. A
// single-track download has no nested members.
func memberTracks(graph *types.ResolvedGraph) []types.Track {
	if graph.Kind == types.ContentKindTrack {
		return nil
	}

	return graph.Tracks
}

func rootAssetSlots(graph *types.ResolvedGraph) []rootAsset {
	var slots []rootAsset
	switch graph.Kind {
	case types.ContentKindArtist:
		if u := fetcher.Pick(graph.Profile.ProfilePicture); u != "" {
			slots = append(slots, rootAsset{suffix: "avatar", url: u, label: "profile picture"}) //nolint:exhaustruct
		}

		if u := fetcher.Pick(graph.Profile.CoverPhoto); u != "" {
			slots = append(slots, rootAsset{suffix: "cover", url: u, label: "cover photo"}) //nolint:exhaustruct
		}
	case types.ContentKindTrack:
		if u := fetcher.Pick(graph.Tracks[0].Artwork); u != "" {
			slots = append(slots, rootAsset{suffix: "artwork", url: u, label: "track artwork"}) //nolint:exhaustruct
		}
	case types.ContentKindPlaylist, types.ContentKindAlbum:
		if u := fetcher.Pick(graph.Playlists[0].Artwork); u != "" {
			slots = append(slots, rootAsset{suffix: "artwork", url: u, label: "playlist artwork"}) //nolint:exhaustruct
		}
	}

	return slots
}
