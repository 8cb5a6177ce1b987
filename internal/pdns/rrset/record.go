package rrset

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// RecordInput is a single record as given by a caller.
// It is either RawContent or RecordFields.
type RecordInput interface {
	recordInput()
}

// RawContent is a record given by its content only.
type RawContent string

func (RawContent) recordInput() {}

// RecordFields is a record given with its flags.
type RecordFields struct {
	Content  string `json:"content"`
	Disabled bool   `json:"disabled,omitempty"`
	SetPTR   bool   `json:"set_ptr,omitempty"`
}

func (RecordFields) recordInput() {}

// Record is a single resource record as sent to PowerDNS.
type Record struct {
	Content  string `json:"content"`
	Disabled bool   `json:"disabled"`
	SetPTR   bool   `json:"set-ptr"`

	// Name, Type and TTL are only set by the legacy wire format.
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
	TTL  uint32 `json:"ttl,omitempty"`
}

// Normalize converts a RecordInput into a wire Record with both flags set.
func Normalize(in RecordInput) (Record, error) {
	switch r := in.(type) {
	case RawContent:
		return Record{Content: string(r)}, nil
	case RecordFields:
		return Record{Content: r.Content, Disabled: r.Disabled, SetPTR: r.SetPTR}, nil
	case nil:
		return Record{}, errors.Wrap(ErrInvalidRecordFormat, "record is nil")
	default:
		return Record{}, errors.Wrapf(ErrInvalidRecordFormat, "unsupported record %T", in)
	}
}

// Records is a list of record inputs.
//
// In JSON every element is either a string (RawContent) or an object
// (RecordFields). A single element that is not wrapped in a list is
// accepted as a list of one.
type Records []RecordInput

// UnmarshalJSON implements json.Unmarshaler.
func (r *Records) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*r = nil
		return nil
	}

	var elements []json.RawMessage

	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &elements); err != nil {
			return errors.Wrap(ErrInvalidRecordFormat, err.Error())
		}
	} else {
		elements = []json.RawMessage{data}
	}

	out := make(Records, 0, len(elements))

	for i, element := range elements {
		in, err := decodeRecordInput(element)
		if err != nil {
			return errors.Wrapf(err, "record %d", i)
		}

		out = append(out, in)
	}

	*r = out

	return nil
}

// recordObject accepts both spellings of the set-ptr flag.
type recordObject struct {
	Content    *string `json:"content"`
	Disabled   bool    `json:"disabled"`
	SetPTR     bool    `json:"set_ptr"`
	SetPTRWire bool    `json:"set-ptr"`
}

func decodeRecordInput(data json.RawMessage) (RecordInput, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrInvalidRecordFormat
	}

	switch data[0] {
	case '"':
		var content string
		if err := json.Unmarshal(data, &content); err != nil {
			return nil, errors.Wrap(ErrInvalidRecordFormat, err.Error())
		}

		return RawContent(content), nil
	case '{':
		var obj recordObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, errors.Wrap(ErrInvalidRecordFormat, err.Error())
		}

		if obj.Content == nil {
			return nil, errors.Wrap(ErrInvalidRecordFormat, "content is missing")
		}

		return RecordFields{
			Content:  *obj.Content,
			Disabled: obj.Disabled,
			SetPTR:   obj.SetPTR || obj.SetPTRWire,
		}, nil
	default:
		return nil, errors.Wrapf(ErrInvalidRecordFormat, "unexpected json %s", string(data))
	}
}
