package rrset

import (
	"errors"
)

var (
	// ErrInvalidRecordFormat is returned when a record is neither RawContent nor RecordFields.
	ErrInvalidRecordFormat = errors.New("invalid record format")

	// ErrInvalidRRset is returned when an RRset misses its name or type.
	ErrInvalidRRset = errors.New("invalid rrset")

	// ErrUnsupportedVersion is returned for API versions without a wire format.
	ErrUnsupportedVersion = errors.New("unsupported PowerDNS API version")
)

// ServerError is returned when a zone snapshot carries an error message instead of data.
type ServerError struct {
	Message string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return "powerdns: " + e.Message
}
