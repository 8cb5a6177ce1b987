package rrset

import (
	"context"
	"net/url"

	"github.com/rs/zerolog/log"
)

// Client is the HTTP collaborator a Zone talks to.
//
// Paths are relative to the API root of the active version. Errors,
// including error bodies returned by PowerDNS, are passed through by Zone
// unchanged.
type Client interface {
	Get(ctx context.Context, path string, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Version() int
}

// Result is the body PowerDNS returns for zone actions.
type Result struct {
	Result string `json:"result"`
}

// Zone mutates the RRsets of one zone on one server.
type Zone struct {
	client Client
	server string
	id     string
}

// NewZone returns a Zone for the zone id on server.
func NewZone(client Client, server, id string) *Zone {
	return &Zone{
		client: client,
		server: server,
		id:     id,
	}
}

// Path returns the API path of the zone.
func (z *Zone) Path() string {
	return "/servers/" + url.PathEscape(z.server) + "/zones/" + url.PathEscape(z.id)
}

// Get returns the current zone snapshot.
func (z *Zone) Get(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	if err := z.client.Get(ctx, z.Path(), &snap); err != nil {
		return nil, err
	}

	return &snap, nil
}

// Notify asks the server to send a DNS NOTIFY to all slaves of the zone.
func (z *Zone) Notify(ctx context.Context) (*Result, error) {
	var res Result
	if err := z.client.Put(ctx, z.Path()+"/notify", nil, &res); err != nil {
		return nil, err
	}

	return &res, nil
}

// AXFRRetrieve asks the server to retrieve a slave zone from its master.
func (z *Zone) AXFRRetrieve(ctx context.Context) (*Result, error) {
	var res Result
	if err := z.client.Put(ctx, z.Path()+"/axfr-retrieve", nil, &res); err != nil {
		return nil, err
	}

	return &res, nil
}

// Update replaces each given RRset with exactly the given records.
//
// The returned patch is the submitted body. It is also returned when
// the submission fails.
func (z *Zone) Update(ctx context.Context, rrsets ...RRsetInput) (*Patch, error) {
	patch, err := z.PlanUpdate(rrsets...)
	if err != nil {
		return nil, err
	}

	return patch, z.submit(ctx, patch)
}

// Remove deletes each given RRset. Only name and type are required.
// Records given with an RRset are normalized to objects but otherwise
// sent as they are.
func (z *Zone) Remove(ctx context.Context, rrsets ...RRsetInput) (*Patch, error) {
	patch, err := z.PlanRemove(rrsets...)
	if err != nil {
		return nil, err
	}

	return patch, z.submit(ctx, patch)
}

// Add appends the given records to the published records of each RRset.
// RRsets that do not exist yet are created.
func (z *Zone) Add(ctx context.Context, rrsets ...RRsetInput) (*Patch, error) {
	patch, err := z.PlanAdd(ctx, rrsets...)
	if err != nil {
		return nil, err
	}

	return patch, z.submit(ctx, patch)
}

// PlanUpdate returns the body Update would submit.
func (z *Zone) PlanUpdate(rrsets ...RRsetInput) (*Patch, error) {
	wf, err := FormatFor(z.client.Version())
	if err != nil {
		return nil, err
	}

	if err = validateAll(rrsets); err != nil {
		return nil, err
	}

	return replacePatch(wf, rrsets)
}

// PlanRemove returns the body Remove would submit.
// Records given with an RRset are normalized, a bare string becomes an
// object. The RRset default and wire format specific fields are not applied.
func (z *Zone) PlanRemove(rrsets ...RRsetInput) (*Patch, error) {
	if err := validateAll(rrsets); err != nil {
		return nil, err
	}

	patch := &Patch{RRsets: make([]RRset, 0, len(rrsets))}

	for _, in := range rrsets {
		out := RRset{
			Name:       in.Name,
			Type:       in.Type,
			TTL:        in.TTL,
			ChangeType: ChangeTypeDelete,
			Disabled:   in.Disabled,
		}

		for _, ri := range in.Records {
			rec, err := Normalize(ri)
			if err != nil {
				return nil, err
			}

			out.Records = append(out.Records, rec)
		}

		patch.RRsets = append(patch.RRsets, out)
	}

	return patch, nil
}

// PlanAdd reads the zone and returns the body Add would submit.
// If the zone can not be read, nothing is planned.
func (z *Zone) PlanAdd(ctx context.Context, rrsets ...RRsetInput) (*Patch, error) {
	if err := validateAll(rrsets); err != nil {
		return nil, err
	}

	snap, err := z.Get(ctx)
	if err != nil {
		return nil, err
	}

	if snap.Error != "" {
		return nil, &ServerError{Message: snap.Error}
	}

	wf, err := FormatFor(z.client.Version())
	if err != nil {
		return nil, err
	}

	merged := make([]RRsetInput, 0, len(rrsets))

	for _, in := range rrsets {
		current := wf.CurrentRecords(snap, in.Name, in.Type)

		records := make(Records, 0, len(current)+len(in.Records))
		for _, rec := range current {
			records = append(records, rec)
		}

		in.Records = append(records, in.Records...)
		merged = append(merged, in)

		log.Debug().
			Str("zone", z.id).
			Str("name", in.Name).
			Str("type", in.Type).
			Int("current", len(current)).
			Int("total", len(in.Records)).
			Msg("merged rrset with published records")
	}

	return replacePatch(wf, merged)
}

func (z *Zone) submit(ctx context.Context, patch *Patch) error {
	log.Debug().
		Str("server", z.server).
		Str("zone", z.id).
		Int("rrsets", len(patch.RRsets)).
		Msg("submitting rrset patch")

	return z.client.Patch(ctx, z.Path(), patch, nil)
}

func replacePatch(wf WireFormat, rrsets []RRsetInput) (*Patch, error) {
	patch := &Patch{RRsets: make([]RRset, 0, len(rrsets))}

	for _, in := range rrsets {
		in.ChangeType = ChangeTypeReplace

		out, err := Format(in, wf)
		if err != nil {
			return nil, err
		}

		patch.RRsets = append(patch.RRsets, out)
	}

	return patch, nil
}

func validateAll(rrsets []RRsetInput) error {
	for _, in := range rrsets {
		if err := in.Validate(); err != nil {
			return err
		}
	}

	return nil
}
