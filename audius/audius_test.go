package audius_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snag/audius"
	"snag/config"
)

func newTestClient(baseURL string) *audius.Client {
	return audius.NewClient(config.API{
		BaseURL:   baseURL,
		AppName:   "snag_test",
		PageLimit: 50,
	})
}

func TestCallUnwrapsEnvelope(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":"u1"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	params := make(url.Values, 1)
	params.Add("limit", "7")

	data, err := client.Call(t.Context(), zerolog.Nop(), "/v1/users/u1", params)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"u1"}`, string(data))
	assert.Equal(t, "snag_test", gotQuery.Get("app_name"))
	assert.Equal(t, "7", gotQuery.Get("limit"))
}

func TestCallMissingEnvelope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"u1"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Call(t.Context(), zerolog.Nop(), "/v1/users/u1", nil)
	var envErr *audius.EnvelopeError
	require.ErrorAs(t, err, &envErr)
}

func TestCallNonSuccessStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Call(t.Context(), zerolog.Nop(), "/v1/tracks/x", nil)
	var netErr *audius.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusBadGateway, netErr.Status)
	assert.Equal(t, "upstream exploded", netErr.Body)
}

func TestCallDoesNotRetry(t *testing.T) {
	t.Parallel()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Call(t.Context(), zerolog.Nop(), "/v1/tracks/x", nil)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
