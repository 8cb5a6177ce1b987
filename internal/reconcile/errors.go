package reconcile

import (
	"errors"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/pdns/rrset"
)

var (
	// ErrUnknownVerb is returned by ParseVerb for anything but add, update and remove.
	ErrUnknownVerb = errors.New("unknown verb")

	// ErrNoRRsets is returned when a change names no RRset at all.
	ErrNoRRsets = errors.New("no rrsets given")

	// ErrZoneEmpty is returned when a change names no zone.
	ErrZoneEmpty = errors.New("zone can not be empty")
)

// IsInvalidInput reports whether err was caused by the caller's input
// rather than by PowerDNS or the transport.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrUnknownVerb) ||
		errors.Is(err, ErrNoRRsets) ||
		errors.Is(err, ErrZoneEmpty) ||
		errors.Is(err, rrset.ErrInvalidRRset) ||
		errors.Is(err, rrset.ErrInvalidRecordFormat)
}
