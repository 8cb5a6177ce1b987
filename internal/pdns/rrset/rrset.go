package rrset

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// ChangeType tells PowerDNS what to do with a submitted RRset.
type ChangeType string

const (
	// ChangeTypeReplace replaces the whole RRset with the submitted records.
	ChangeTypeReplace ChangeType = "REPLACE"

	// ChangeTypeDelete deletes the RRset.
	ChangeTypeDelete ChangeType = "DELETE"
)

var validate = validator.New()

// RRsetInput is an RRset as given by a caller.
type RRsetInput struct {
	Name       string     `json:"name"                 validate:"required"`
	Type       string     `json:"type"                 validate:"required"`
	TTL        uint32     `json:"ttl,omitempty"`
	ChangeType ChangeType `json:"changetype,omitempty"`
	// Disabled is the default for records that do not disable themselves.
	Disabled bool    `json:"disabled,omitempty"`
	Records  Records `json:"records,omitempty"`
}

// Validate checks the fields an RRset can not be identified without.
// Record content is not validated.
func (in RRsetInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return errors.Wrapf(ErrInvalidRRset, "field %s failed on %s", validationErrors[0].Field(), validationErrors[0].Tag())
		}

		return errors.Wrap(ErrInvalidRRset, err.Error())
	}

	return nil
}

// RRset is an RRset as sent to PowerDNS.
type RRset struct {
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	TTL        uint32     `json:"ttl,omitempty"`
	ChangeType ChangeType `json:"changetype,omitempty"`
	Disabled   bool       `json:"disabled,omitempty"`
	Records    []Record   `json:"records,omitempty"`
}

// MarshalJSON always writes records for a REPLACE, an empty list empties
// the RRset. Other RRsets leave out an empty records key.
func (r RRset) MarshalJSON() ([]byte, error) {
	type plain RRset

	if r.ChangeType != ChangeTypeReplace {
		return json.Marshal(plain(r))
	}

	records := r.Records
	if records == nil {
		records = []Record{}
	}

	return json.Marshal(struct {
		plain
		Records []Record `json:"records"`
	}{plain(r), records})
}

// Patch is the body of a zone PATCH request.
type Patch struct {
	RRsets []RRset `json:"rrsets"`
}

// Snapshot is the current state of a zone as returned by PowerDNS.
// Legacy servers fill Records, structured servers fill RRsets.
type Snapshot struct {
	ID      string   `json:"id,omitempty"`
	Name    string   `json:"name,omitempty"`
	Kind    string   `json:"kind,omitempty"`
	Records []Record `json:"records,omitempty"`
	RRsets  []RRset  `json:"rrsets,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Format normalizes the records of in and shapes them with wf.
//
// A record is disabled if it disables itself or if in is disabled.
// The input is not modified.
func Format(in RRsetInput, wf WireFormat) (RRset, error) {
	if wf == nil {
		return RRset{}, errors.Wrap(ErrUnsupportedVersion, "no wire format")
	}

	out := RRset{
		Name:       in.Name,
		Type:       in.Type,
		TTL:        in.TTL,
		ChangeType: in.ChangeType,
		Disabled:   in.Disabled,
		Records:    make([]Record, 0, len(in.Records)),
	}

	for i, ri := range in.Records {
		rec, err := Normalize(ri)
		if err != nil {
			return RRset{}, errors.Wrapf(err, "rrset %s %s record %d", in.Name, in.Type, i)
		}

		rec.Disabled = rec.Disabled || in.Disabled

		out.Records = append(out.Records, wf.FormatRecord(in, rec))
	}

	return out, nil
}
