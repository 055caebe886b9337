package httputil

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

func ReadResponseBody(resp *http.Response) ([]byte, error) {
	respBody, err := io.ReadAll(resp.Body)
	if nil != err {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("unexpected empty response body")
		}

		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	return respBody, nil
}

// UnwrapEnvelope extracts the payload of the standard {"data": ...} response
// envelope. It reports false when the wrapper key is absent, regardless of
// whether the rest of the document is well-formed.
func UnwrapEnvelope(b []byte) ([]byte, bool) {
	if !gjson.ValidBytes(b) {
		return nil, false
	}

	data := gjson.GetBytes(b, "data")
	if !data.Exists() {
		return nil, false
	}

	return []byte(data.Raw), true
}

// IsImageResponse checks the declared content type of an asset response.
// Body sniffing happens at the fetcher on top of this.
func IsImageResponse(resp *http.Response) bool {
	ct := resp.Header.Get("Content-Type")
	return len(ct) >= 6 && ct[:6] == "image/"
}
