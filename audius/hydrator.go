package audius

import (
	"context"
	"fmt"
	"net/url"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"snag/audius/types"
	"snag/ratelimit"
)

// Hydrator expands a resolved root entity into a full ResolvedGraph. Any
// failure aborts the whole operation; partial graphs are never returned.
type Hydrator struct {
	client   *Client
	resolver *Resolver
}

func NewHydrator(client *Client) *Hydrator {
	return &Hydrator{
		client:   client,
		resolver: NewResolver(client),
	}
}

// ArtistGraph resolves a profile by handle and fetches its track and
// playlist lists concurrently; the two branches are independent.
func (h *Hydrator) ArtistGraph(ctx context.Context, logger zerolog.Logger, cid types.ContentID, page PageParams) (*types.ResolvedGraph, error) {
	artist, err := h.resolver.Artist(ctx, logger, cid.Handle)
	if nil != err {
		return nil, fmt.Errorf("failed to resolve artist: %w", err)
	}

	var (
		tracks    []types.Track
		playlists []types.Playlist
		wg, wgCtx = errgroup.WithContext(ctx)
	)

	wg.Go(func() error {
		endpoint := fmt.Sprintf(endpointUserTracks, url.PathEscape(artist.ID))
		data, err := h.client.Call(wgCtx, logger, endpoint, h.client.pageValues(page))
		if nil != err {
			return fmt.Errorf("failed to get artist tracks: %w", err)
		}

		if err := json.Unmarshal(data, &tracks); nil != err {
			return fmt.Errorf("failed to decode artist tracks response: %v", err)
		}

		return nil
	})

	wg.Go(func() error {
		endpoint := fmt.Sprintf(endpointUserPlaylists, url.PathEscape(artist.ID))
		data, err := h.client.Call(wgCtx, logger, endpoint, h.client.pageValues(page))
		if nil != err {
			return fmt.Errorf("failed to get artist playlists: %w", err)
		}

		if err := json.Unmarshal(data, &playlists); nil != err {
			return fmt.Errorf("failed to decode artist playlists response: %v", err)
		}

		return nil
	})

	if err := wg.Wait(); nil != err {
		return nil, fmt.Errorf("failed to hydrate artist lists: %w", err)
	}

	return &types.ResolvedGraph{
		Kind:      types.ContentKindArtist,
		Profile:   artist,
		Tracks:    tracks,
		Playlists: playlists,
	}, nil
}

// TrackGraph resolves a single track. No further hydration is needed since
// the track record embeds its uploader summary.
func (h *Hydrator) TrackGraph(ctx context.Context, logger zerolog.Logger, cid types.ContentID) (*types.ResolvedGraph, error) {
	track, err := h.resolver.Track(ctx, logger, cid)
	if nil != err {
		return nil, fmt.Errorf("failed to resolve track: %w", err)
	}

	return &types.ResolvedGraph{
		Kind:      types.ContentKindTrack,
		Profile:   track.User,
		Tracks:    []types.Track{*track},
		Playlists: nil,
	}, nil
}

// PlaylistGraph resolves a playlist and hydrates every member track into a
// full entity. Member hydration runs concurrently, but each worker writes
// into its own index slot so the final sequence keeps the platform order.
func (h *Hydrator) PlaylistGraph(ctx context.Context, logger zerolog.Logger, cid types.ContentID) (*types.ResolvedGraph, error) {
	playlist, err := h.resolver.Playlist(ctx, logger, cid)
	if nil != err {
		return nil, fmt.Errorf("failed to resolve playlist: %w", err)
	}

	data, err := h.client.Call(ctx, logger, fmt.Sprintf(endpointPlaylistTracks, url.PathEscape(playlist.ID)), nil)
	if nil != err {
		return nil, fmt.Errorf("failed to get playlist tracks: %w", err)
	}

	var stubs []types.Track
	if err := json.Unmarshal(data, &stubs); nil != err {
		return nil, fmt.Errorf("failed to decode playlist tracks response: %v", err)
	}

	if len(stubs) == 0 {
		return nil, &EmptyPlaylistError{ID: playlist.ID}
	}

	var (
		tracks    = make([]types.Track, len(stubs))
		wg, wgCtx = errgroup.WithContext(ctx)
	)

	wg.SetLimit(ratelimit.PlaylistHydrationConcurrency)
	for i, stub := range stubs {
		wg.Go(func() error {
			full, err := h.resolver.trackByID(wgCtx, logger, stub.ID)
			if nil != err {
				return fmt.Errorf("failed to hydrate playlist track %s: %w", stub.ID, err)
			}

			tracks[i] = *full

			return nil
		})
	}

	if err := wg.Wait(); nil != err {
		return nil, fmt.Errorf("failed to wait for track hydration workers: %w", err)
	}

	kind := types.ContentKindPlaylist
	if cid.Kind == types.ContentKindAlbum || playlist.IsAlbum {
		kind = types.ContentKindAlbum
	}

	return &types.ResolvedGraph{
		Kind:      kind,
		Profile:   playlist.User,
		Tracks:    tracks,
		Playlists: []types.Playlist{*playlist},
	}, nil
}

// Graph dispatches hydration on the identifier's kind.
func (h *Hydrator) Graph(ctx context.Context, logger zerolog.Logger, cid types.ContentID, page PageParams) (*types.ResolvedGraph, error) {
	switch cid.Kind {
	case types.ContentKindArtist:
		return h.ArtistGraph(ctx, logger, cid, page)
	case types.ContentKindTrack:
		return h.TrackGraph(ctx, logger, cid)
	case types.ContentKindPlaylist, types.ContentKindAlbum:
		return h.PlaylistGraph(ctx, logger, cid)
	default:
		return nil, fmt.Errorf("unexpected content kind: %s", cid.Kind)
	}
}
