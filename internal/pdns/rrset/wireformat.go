package rrset

import (
	"github.com/pkg/errors"
)

// WireFormat shapes records for one PowerDNS API version and reads the
// current records of an RRset from a zone snapshot of that version.
type WireFormat interface {
	// Version returns the API version this format serves.
	Version() int

	// FormatRecord returns rec shaped for the wire as a member of in.
	FormatRecord(in RRsetInput, rec Record) Record

	// CurrentRecords returns the records published for name and type.
	CurrentRecords(snap *Snapshot, name, typ string) []RecordFields
}

// FormatFor returns the wire format for an API version.
func FormatFor(version int) (WireFormat, error) {
	switch {
	case version < 0:
		return nil, errors.Wrapf(ErrUnsupportedVersion, "version %d", version)
	case version == 0:
		return Legacy{}, nil
	default:
		return Structured{APIVersion: version}, nil
	}
}

// Legacy is the flat record format of API version 0.
type Legacy struct{}

// Version implements WireFormat.
func (Legacy) Version() int {
	return 0
}

// FormatRecord stamps the RRset identity onto rec.
func (Legacy) FormatRecord(in RRsetInput, rec Record) Record {
	rec.Name = in.Name
	rec.Type = in.Type
	rec.TTL = in.TTL

	return rec
}

// CurrentRecords filters the flat record list of snap.
// Only content and disabled are kept, the server does not accept the
// other fields back.
func (Legacy) CurrentRecords(snap *Snapshot, name, typ string) []RecordFields {
	if snap == nil {
		return nil
	}

	var current []RecordFields

	for _, rec := range snap.Records {
		if rec.Name == name && rec.Type == typ {
			current = append(current, RecordFields{
				Content:  rec.Content,
				Disabled: rec.Disabled,
			})
		}
	}

	return current
}

// Structured is the RRset format of API version 1 and later.
type Structured struct {
	APIVersion int
}

// Version implements WireFormat.
func (s Structured) Version() int {
	return s.APIVersion
}

// FormatRecord returns rec without any RRset identity.
func (Structured) FormatRecord(_ RRsetInput, rec Record) Record {
	rec.Name = ""
	rec.Type = ""
	rec.TTL = 0

	return rec
}

// CurrentRecords returns the records of the first RRset in snap matching
// name and type. A missing RRset has no current records.
func (Structured) CurrentRecords(snap *Snapshot, name, typ string) []RecordFields {
	if snap == nil {
		return nil
	}

	for _, rs := range snap.RRsets {
		if rs.Name != name || rs.Type != typ {
			continue
		}

		current := make([]RecordFields, 0, len(rs.Records))
		for _, rec := range rs.Records {
			current = append(current, RecordFields{
				Content:  rec.Content,
				Disabled: rec.Disabled,
				SetPTR:   rec.SetPTR,
			})
		}

		return current
	}

	return nil
}
