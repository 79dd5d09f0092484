package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoSession means nobody is signed in, or the stored token expired.
	ErrNoSession = errors.New("not signed in")
	// ErrSessionExpired means the server rejected the token.
	ErrSessionExpired = errors.New("session expired, please sign in again")
)

// APIError is a non-success answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Unwrap lets errors.Is(err, ErrSessionExpired) match a 401.
func (e *APIError) Unwrap() error {
	if e.IsUnauthorized() {
		return ErrSessionExpired
	}
	return nil
}
