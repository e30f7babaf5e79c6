package owm

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

var (
	ErrMissingAPIKey = errors.New("missing OpenWeatherMap API key")
	ErrNotFound      = errors.New("city not found")
	ErrUnauthorized  = errors.New("invalid API key")
)

// ProviderError is a non-2xx response. Message is the provider's own
// explanation from the response body, when it sent one.
type ProviderError struct {
	Endpoint string
	Status   int
	Message  string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.Status, e.Message)
}

// Is lets callers match 404 and 401 responses with errors.Is.
func (e *ProviderError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	}
	return false
}

// NetworkError is a transport-level failure: no response was received.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// newNetworkError strips the request URL from e so the API key never ends
// up in logs or user-facing messages.
func newNetworkError(endpoint string, err error) *NetworkError {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		err = uerr.Err
	}
	return &NetworkError{Endpoint: endpoint, Err: err}
}
