package session

import (
	"errors"

	"github.com/lox/weatherdash/internal/owm"
)

const (
	msgMissingKey = "Missing OpenWeatherMap API key"
	msgNotFound   = "City not found"
	msgBadKey     = "Invalid API key"
	msgGeneric    = "Something went wrong"
	msgNetwork    = "Error fetching data"
)

// errorMessage turns a provider error into the single line shown to the user.
func errorMessage(err error) string {
	var perr *owm.ProviderError
	switch {
	case errors.Is(err, owm.ErrMissingAPIKey):
		return msgMissingKey
	case errors.Is(err, owm.ErrNotFound):
		return msgNotFound
	case errors.Is(err, owm.ErrUnauthorized):
		return msgBadKey
	case errors.As(err, &perr):
		if perr.Message != "" {
			return perr.Message
		}
		return msgGeneric
	}
	return msgNetwork
}
