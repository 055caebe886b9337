// Package fetcher retrieves image assets with bounded retries. Asset absence
// is non-fatal: exhausted retries yield nil bytes, never an aborting error.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"snag/audius/types"
	"snag/config"
	"snag/httputil"
)

// sizePriority is the fixed quality order, largest to smallest. Cover-photo
// variants come before square profile variants of comparable size.
var sizePriority = [...]string{
	"2000x",
	"1000x1000",
	"640x",
	"480x480",
	"150x150",
}

// Pick selects the first populated, string-typed entry in priority order.
// A bare URL string is used as-is. An empty pick means no asset exists.
func Pick(p types.Picture) string {
	if p.Direct != "" {
		return p.Direct
	}

	for _, size := range sizePriority {
		if v, ok := p.Variants[size]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}

	return ""
}

type Fetcher struct {
	http      *http.Client
	attempts  uint64
	baseDelay time.Duration
	timeout   time.Duration
}

func New(conf config.Fetcher) *Fetcher {
	// A hand-built config can carry zero attempts; attempts-1 feeds a uint64
	// retry budget, so clamp before the subtraction can wrap around.
	attempts := conf.Attempts
	if attempts < 1 {
		attempts = 1
	}

	return &Fetcher{
		http:      &http.Client{}, //nolint:exhaustruct
		attempts:  uint64(attempts),
		baseDelay: time.Duration(conf.BaseDelaySecs) * time.Second,
		timeout:   time.Duration(conf.TimeoutSecs) * time.Second,
	}
}

// Fetch downloads an image with exponential backoff, doubling the base delay
// each attempt. Every attempt has its own wall-clock budget enforced by
// aborting the in-flight request. Retries are spent on transport errors,
// non-success statuses, non-image bodies and empty bodies; exhaustion
// returns nil.
func (f *Fetcher) Fetch(ctx context.Context, logger zerolog.Logger, assetURL string) []byte {
	if !strings.HasPrefix(assetURL, "http") {
		logger.Warn().Str("url", assetURL).Msg("Refusing to fetch non-http asset URL")
		return nil
	}

	logger = logger.With().Str("url", assetURL).Logger()

	var b []byte
	err := retry.Do(
		ctx,
		retry.WithMaxRetries(f.attempts-1, retry.NewExponential(f.baseDelay)),
		func(ctx context.Context) error {
			attemptBytes, err := f.fetchOnce(ctx, logger, assetURL)
			if nil != err {
				logger.Warn().Err(err).Msg("Asset fetch attempt failed")
				return retry.RetryableError(err)
			}

			b = attemptBytes

			return nil
		},
	)
	if nil != err {
		logger.Error().Err(err).Msg("Asset fetch gave up after retries")
		return nil
	}

	return b
}

func (f *Fetcher) fetchOnce(ctx context.Context, logger zerolog.Logger, assetURL string) (b []byte, err error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if nil != err {
		return nil, fmt.Errorf("failed to create asset request: %w", err)
	}

	req.Header.Add("Accept", "image/*")

	resp, err := f.http.Do(req)
	if nil != err {
		return nil, fmt.Errorf("failed to send asset request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); nil != closeErr {
			logger.Error().Err(closeErr).Msg("Failed to close asset response body")
			err = errors.Join(err, fmt.Errorf("failed to close asset response body: %v", closeErr))
		}
	}()

	if code := resp.StatusCode; code < 200 || code > 299 {
		return nil, fmt.Errorf("unexpected asset response status: %d", code)
	}

	if !httputil.IsImageResponse(resp) {
		return nil, fmt.Errorf("unexpected asset content type: %q", resp.Header.Get("Content-Type"))
	}

	respBytes, err := httputil.ReadResponseBody(resp)
	if nil != err {
		return nil, fmt.Errorf("failed to read asset response body: %w", err)
	}

	if len(respBytes) == 0 {
		return nil, errors.New("asset response body is empty")
	}

	if mt := mimetype.Detect(respBytes); !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("asset body is not an image: %s", mt.String())
	}

	return respBytes, nil
}
