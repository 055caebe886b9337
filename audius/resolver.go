package audius

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"snag/audius/types"
	"snag/constant"
)

// Resolver turns a classified identifier into a canonical entity through an
// ordered chain of strategies. Failures of non-final strategies are logged
// and swallowed; only chain exhaustion surfaces to the caller.
type Resolver struct {
	client *Client
}

func NewResolver(client *Client) *Resolver {
	return &Resolver{client: client}
}

type strategy[T any] struct {
	name string
	run  func(ctx context.Context) (T, error)
}

// firstOf evaluates strategies in order and short-circuits on the first
// success. It reports false once every strategy has failed.
func firstOf[T any](ctx context.Context, logger zerolog.Logger, strategies []strategy[T]) (T, bool) {
	for _, s := range strategies {
		v, err := s.run(ctx)
		if nil != err {
			logger.Warn().Err(err).Str("strategy", s.name).Msg("Resolution strategy failed")
			continue
		}

		logger.Debug().Str("strategy", s.name).Msg("Resolution strategy succeeded")

		return v, true
	}

	var zero T

	return zero, false
}

// Track resolves a track identifier. The direct-ID lookup is tried first
// because it is a single round trip; resolving the permalink URL costs two.
func (r *Resolver) Track(ctx context.Context, logger zerolog.Logger, cid types.ContentID) (*types.Track, error) {
	strategies := make([]strategy[*types.Track], 0, 2)
	if cid.IsDirect() {
		strategies = append(strategies, strategy[*types.Track]{
			name: "direct-id",
			run: func(ctx context.Context) (*types.Track, error) {
				return r.trackByID(ctx, logger, cid.ID)
			},
		})
	}

	if cid.Handle != "" {
		strategies = append(strategies, strategy[*types.Track]{
			name: "resolve-url",
			run: func(ctx context.Context) (*types.Track, error) {
				id, err := r.resolvePermalink(ctx, logger, cid.Permalink())
				if nil != err {
					return nil, fmt.Errorf("failed to resolve track permalink: %w", err)
				}

				return r.trackByID(ctx, logger, id)
			},
		})
	}

	track, ok := firstOf(ctx, logger, strategies)
	if !ok {
		return nil, &NotFoundError{Kind: "track", Identifier: identifierOf(cid)}
	}

	return track, nil
}

// Playlist resolves a playlist or album identifier. Permalink lookup is
// preferred over keyword search; search picks the result whose permalink
// contains the slug, falling back to the first result.
func (r *Resolver) Playlist(ctx context.Context, logger zerolog.Logger, cid types.ContentID) (*types.Playlist, error) {
	strategies := make([]strategy[*types.Playlist], 0, 2)
	if cid.IsDirect() {
		strategies = append(strategies, strategy[*types.Playlist]{
			name: "direct-id",
			run: func(ctx context.Context) (*types.Playlist, error) {
				return r.playlistByID(ctx, logger, cid.ID)
			},
		})
	} else {
		strategies = append(strategies,
			strategy[*types.Playlist]{
				name: "by-permalink",
				run: func(ctx context.Context) (*types.Playlist, error) {
					return r.playlistByPermalink(ctx, logger, cid.Handle, cid.Slug)
				},
			},
			strategy[*types.Playlist]{
				name: "search",
				run: func(ctx context.Context) (*types.Playlist, error) {
					return r.playlistBySearch(ctx, logger, cid.Slug)
				},
			},
		)
	}

	playlist, ok := firstOf(ctx, logger, strategies)
	if !ok {
		return nil, &NotFoundError{Kind: "playlist", Identifier: identifierOf(cid)}
	}

	return playlist, nil
}

// Artist resolves a handle to a full profile: the handle lookup yields the
// canonical id, then the id lookup yields the complete record.
func (r *Resolver) Artist(ctx context.Context, logger zerolog.Logger, handle string) (*types.Artist, error) {
	data, err := r.client.Call(ctx, logger, fmt.Sprintf(endpointUserByHandle, url.PathEscape(handle)), nil)
	if nil != err {
		return nil, fmt.Errorf("failed to look up user by handle: %w", err)
	}

	var stub struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &stub); nil != err {
		return nil, fmt.Errorf("failed to decode user handle lookup response: %v", err)
	}

	if stub.ID == "" {
		return nil, &NotFoundError{Kind: "artist", Identifier: handle}
	}

	data, err = r.client.Call(ctx, logger, fmt.Sprintf(endpointUserByID, url.PathEscape(stub.ID)), nil)
	if nil != err {
		return nil, fmt.Errorf("failed to get full user profile: %w", err)
	}

	var artist types.Artist
	if err := json.Unmarshal(data, &artist); nil != err {
		return nil, fmt.Errorf("failed to decode user profile response: %v", err)
	}

	return &artist, nil
}

func (r *Resolver) trackByID(ctx context.Context, logger zerolog.Logger, id string) (*types.Track, error) {
	data, err := r.client.Call(ctx, logger, fmt.Sprintf(endpointTrackByID, url.PathEscape(id)), nil)
	if nil != err {
		return nil, fmt.Errorf("failed to get track by id: %w", err)
	}

	var track types.Track
	if err := json.Unmarshal(data, &track); nil != err {
		return nil, fmt.Errorf("failed to decode track response: %v", err)
	}

	return &track, nil
}

func (r *Resolver) resolvePermalink(ctx context.Context, logger zerolog.Logger, permalink string) (string, error) {
	params := make(url.Values, 1)
	params.Add("url", constant.WebBaseURL+"/"+permalink)

	data, err := r.client.Call(ctx, logger, endpointResolve, params)
	if nil != err {
		return "", fmt.Errorf("failed to call resolve endpoint: %w", err)
	}

	var resolved struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &resolved); nil != err {
		return "", fmt.Errorf("failed to decode resolve response: %v", err)
	}

	if resolved.ID == "" {
		return "", fmt.Errorf("resolve endpoint returned no id for %q", permalink)
	}

	return resolved.ID, nil
}

func (r *Resolver) playlistByID(ctx context.Context, logger zerolog.Logger, id string) (*types.Playlist, error) {
	data, err := r.client.Call(ctx, logger, fmt.Sprintf(endpointPlaylistByID, url.PathEscape(id)), nil)
	if nil != err {
		return nil, fmt.Errorf("failed to get playlist by id: %w", err)
	}

	return decodePlaylistPayload(data)
}

func (r *Resolver) playlistByPermalink(ctx context.Context, logger zerolog.Logger, handle, slug string) (*types.Playlist, error) {
	endpoint := fmt.Sprintf(endpointPlaylistPermalink, url.PathEscape(handle), url.PathEscape(slug))
	data, err := r.client.Call(ctx, logger, endpoint, nil)
	if nil != err {
		return nil, fmt.Errorf("failed to get playlist by permalink: %w", err)
	}

	var playlists []types.Playlist
	if err := json.Unmarshal(data, &playlists); nil != err {
		return nil, fmt.Errorf("failed to decode playlist permalink response: %v", err)
	}

	if len(playlists) == 0 {
		return nil, errors.New("permalink lookup returned an empty list")
	}

	return &playlists[0], nil
}

func (r *Resolver) playlistBySearch(ctx context.Context, logger zerolog.Logger, slug string) (*types.Playlist, error) {
	params := make(url.Values, 1)
	params.Add("query", slug)

	data, err := r.client.Call(ctx, logger, endpointPlaylistSearch, params)
	if nil != err {
		return nil, fmt.Errorf("failed to search playlists: %w", err)
	}

	var results []types.Playlist
	if err := json.Unmarshal(data, &results); nil != err {
		return nil, fmt.Errorf("failed to decode playlist search response: %v", err)
	}

	if len(results) == 0 {
		return nil, errors.New("playlist search returned no results")
	}

	for i, p := range results {
		if strings.Contains(p.Permalink, slug) {
			return &results[i], nil
		}
	}

	return &results[0], nil
}

// decodePlaylistPayload accepts both a single playlist object and a
// one-element list, since direct-ID and permalink lookups disagree on shape.
func decodePlaylistPayload(data []byte) (*types.Playlist, error) {
	if len(data) > 0 && data[0] == '[' {
		var playlists []types.Playlist
		if err := json.Unmarshal(data, &playlists); nil != err {
			return nil, fmt.Errorf("failed to decode playlist list response: %v", err)
		}

		if len(playlists) == 0 {
			return nil, errors.New("playlist lookup returned an empty list")
		}

		return &playlists[0], nil
	}

	var playlist types.Playlist
	if err := json.Unmarshal(data, &playlist); nil != err {
		return nil, fmt.Errorf("failed to decode playlist response: %v", err)
	}

	return &playlist, nil
}

func identifierOf(cid types.ContentID) string {
	if cid.IsDirect() {
		return cid.ID
	}

	return cid.Permalink()
}
