package client

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyURL is returned if no server url was configured.
	ErrEmptyURL = errors.New("PowerDNS url can not be empty")

	// ErrEmptyAPIKey is returned if no api key was configured.
	ErrEmptyAPIKey = errors.New("PowerDNS api key can not be empty")

	// ErrNoAPIVersion is returned if the server lists no API versions.
	ErrNoAPIVersion = errors.New("PowerDNS server lists no api versions")
)

// APIError is an error reported by the PowerDNS server.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("powerdns: %s (status %d)", e.Message, e.StatusCode)
}
