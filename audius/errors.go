package audius

import "fmt"

// NetworkError carries the status and body text of a non-success transport
// response.
type NetworkError struct {
	Status int
	Body   string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("api request failed with status %d: %s", e.Status, e.Body)
}

// EnvelopeError reports a successful transport response whose body is
// missing the standard data wrapper.
type EnvelopeError struct {
	Body string
}

func (e *EnvelopeError) Error() string {
	return "invalid api response format: missing data wrapper"
}

// NotFoundError reports that every resolution strategy for an identifier was
// exhausted without a result.
type NotFoundError struct {
	Kind       string
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Identifier)
}

// EmptyPlaylistError reports a playlist that resolved but has zero member
// tracks.
type EmptyPlaylistError struct {
	ID string
}

func (e *EmptyPlaylistError) Error() string {
	return fmt.Sprintf("playlist %q has no tracks", e.ID)
}
