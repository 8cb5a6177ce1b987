package powerdns

import (
	"errors"
)

var (
	// ErrClientNotInitialized is returned when the PowerDNS client is not initialized.
	ErrClientNotInitialized = errors.New("PowerDNS client not initialized")

	// ErrZoneNameEmpty is returned when a zone lookup has no name.
	ErrZoneNameEmpty = errors.New("zone name can not be empty")
)
