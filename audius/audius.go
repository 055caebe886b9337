package audius

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"snag/config"
	"snag/httputil"
)

const (
	endpointUserByHandle       = "/v1/users/handle/%s"
	endpointUserByID           = "/v1/users/%s"
	endpointUserTracks         = "/v1/users/%s/tracks"
	endpointUserPlaylists      = "/v1/users/%s/playlists"
	endpointTrackByID          = "/v1/tracks/%s"
	endpointResolve            = "/v1/resolve"
	endpointPlaylistByID       = "/v1/playlists/%s"
	endpointPlaylistPermalink  = "/v1/playlists/by_permalink/%s/%s"
	endpointPlaylistSearch     = "/v1/playlists/search"
	endpointPlaylistTracks     = "/v1/playlists/%s/tracks"
	defaultArtistListLimit     = 100
	defaultArtistListSortField = "date"
)

// Client issues parameterized requests against a single content API host.
// It is explicitly constructed and injectable so tests can point separate
// instances at distinct stub backends.
type Client struct {
	http      *http.Client
	baseURL   string
	appName   string
	pageLimit int
}

func NewClient(conf config.API) *Client {
	return &Client{
		http:      &http.Client{}, //nolint:exhaustruct
		baseURL:   conf.BaseURL,
		appName:   conf.AppName,
		pageLimit: conf.PageLimit,
	}
}

// Call GETs an endpoint with the shared app identity plus the caller's
// params, and returns the unwrapped data envelope payload. It never retries;
// a failed call is a fallback signal for the resolver, not a transient fault.
func (c *Client) Call(ctx context.Context, logger zerolog.Logger, endpoint string, params url.Values) (b []byte, err error) {
	reqURL, err := url.Parse(c.baseURL + endpoint)
	if nil != err {
		logger.Error().Err(err).Str("endpoint", endpoint).Msg("Failed to parse endpoint URL")
		return nil, fmt.Errorf("failed to parse endpoint URL: %v", err)
	}

	query := make(url.Values, len(params)+1)
	query.Add("app_name", c.appName)
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if nil != err {
		logger.Error().Err(err).Msg("Failed to create api request")
		return nil, fmt.Errorf("failed to create api request: %w", err)
	}

	req.Header.Add("Accept", "application/json")

	logger.Debug().Str("url", reqURL.String()).Msg("Sending api request")

	resp, err := c.http.Do(req)
	if nil != err {
		logger.Error().Err(err).Msg("Failed to send api request")
		return nil, fmt.Errorf("failed to send api request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); nil != closeErr {
			logger.Error().Err(closeErr).Msg("Failed to close api response body")
			err = errors.Join(err, fmt.Errorf("failed to close api response body: %v", closeErr))
		}
	}()

	respBytes, err := httputil.ReadResponseBody(resp)
	if nil != err {
		logger.Error().Err(err).Msg("Failed to read api response body")
		return nil, fmt.Errorf("failed to read api response body: %w", err)
	}

	if code := resp.StatusCode; code < 200 || code > 299 {
		logger.Error().Int("status_code", code).Bytes("response_body", respBytes).Msg("Unexpected response status code")
		return nil, &NetworkError{Status: code, Body: string(respBytes)}
	}

	data, ok := httputil.UnwrapEnvelope(respBytes)
	if !ok {
		logger.Error().Bytes("response_body", respBytes).Msg("Response body is missing the data wrapper")
		return nil, &EnvelopeError{Body: string(respBytes)}
	}

	return data, nil
}

// PageParams are caller overrides for client-side pagination of an artist's
// track and playlist lists.
type PageParams struct {
	Limit  int
	Offset int
	Sort   string
}

// pageValues resolves the effective page size: an explicit caller override
// wins, then the configured client default, then the stock list limit.
func (c *Client) pageValues(p PageParams) url.Values {
	limit := c.pageLimit
	if limit == 0 {
		limit = defaultArtistListLimit
	}

	return p.values(limit)
}

func (p PageParams) values(defaultLimit int) url.Values {
	limit := p.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	sort := p.Sort
	if sort == "" {
		sort = defaultArtistListSortField
	}

	params := make(url.Values, 3)
	params.Add("limit", fmt.Sprintf("%d", limit))
	params.Add("offset", fmt.Sprintf("%d", p.Offset))
	params.Add("sort", sort)

	return params
}
