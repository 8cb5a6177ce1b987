// Package reconcile applies RRset changes to a zone and journals them.
package reconcile

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/db/controller/change"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/db/models"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/pdns/rrset"
)

// Service runs RRset changes against one PowerDNS server.
type Service struct {
	client rrset.Client
	server string
	db     *gorm.DB
}

// Outcome describes an applied or planned change.
type Outcome struct {
	Zone     string       `json:"zone"`
	Verb     Verb         `json:"verb"`
	DryRun   bool         `json:"dry_run"`
	ChangeID uint64       `json:"change_id,omitempty"`
	Payload  *rrset.Patch `json:"payload"`
}

// New returns a Service. Without db, changes are not journaled.
func New(client rrset.Client, server string, db *gorm.DB) *Service {
	return &Service{
		client: client,
		server: server,
		db:     db,
	}
}

// NormalizeZoneName appends the trailing dot PowerDNS uses in zone ids.
func NormalizeZoneName(name string) string {
	name = strings.TrimSpace(name)
	if name != "" && !strings.HasSuffix(name, ".") {
		return name + "."
	}

	return name
}

// Zone returns the rrset.Zone for name.
func (s *Service) Zone(name string) *rrset.Zone {
	return rrset.NewZone(s.client, s.server, NormalizeZoneName(name))
}

// Apply runs verb for inputs on zone. With dryRun nothing is written to
// PowerDNS and the planned payload is returned.
// The payload is also returned when PowerDNS rejected it.
func (s *Service) Apply(ctx context.Context, zone string, verb Verb, inputs []rrset.RRsetInput, dryRun bool) (*Outcome, error) {
	zoneID := NormalizeZoneName(zone)
	if zoneID == "" {
		return nil, ErrZoneEmpty
	}

	verb, err := ParseVerb(string(verb))
	if err != nil {
		return nil, err
	}

	if len(inputs) == 0 {
		return nil, ErrNoRRsets
	}

	start := time.Now()
	z := rrset.NewZone(s.client, s.server, zoneID)

	patch, err := s.run(ctx, z, verb, inputs, dryRun)

	changeDuration.WithLabelValues(string(verb)).Observe(time.Since(start).Seconds())

	result := resultSuccess

	switch {
	case err != nil:
		result = resultError
	case dryRun:
		result = resultDryRun
	}

	changesTotal.WithLabelValues(string(verb), result).Inc()

	out := &Outcome{Zone: zoneID, Verb: verb, DryRun: dryRun, Payload: patch}

	if patch != nil {
		out.ChangeID = s.journal(zoneID, verb, patch, dryRun, err)
	}

	logEvent(err).
		Str("server", s.server).
		Str("zone", zoneID).
		Str("verb", string(verb)).
		Bool("dry_run", dryRun).
		Int("rrsets", len(inputs)).
		Dur("elapsed", time.Since(start)).
		Msg("rrset change")

	return out, err
}

func (s *Service) run(ctx context.Context, z *rrset.Zone, verb Verb, inputs []rrset.RRsetInput, dryRun bool) (*rrset.Patch, error) {
	switch {
	case verb == VerbAdd && dryRun:
		return z.PlanAdd(ctx, inputs...)
	case verb == VerbAdd:
		return z.Add(ctx, inputs...)
	case verb == VerbUpdate && dryRun:
		return z.PlanUpdate(inputs...)
	case verb == VerbUpdate:
		return z.Update(ctx, inputs...)
	case verb == VerbRemove && dryRun:
		return z.PlanRemove(inputs...)
	case verb == VerbRemove:
		return z.Remove(ctx, inputs...)
	default:
		return nil, ErrUnknownVerb
	}
}

// journal stores the change and returns its id, 0 if nothing was stored.
// A failing journal never fails the change itself.
func (s *Service) journal(zone string, verb Verb, patch *rrset.Patch, dryRun bool, applyErr error) uint64 {
	if s.db == nil {
		return 0
	}

	payload, err := json.Marshal(patch)
	if err != nil {
		log.Error().Err(err).Str("zone", zone).Msg("can't encode change for journal")

		return 0
	}

	entry := &models.Change{
		Zone:       zone,
		Server:     s.server,
		Verb:       string(verb),
		APIVersion: s.client.Version(),
		DryRun:     dryRun,
		Payload:    string(payload),
	}

	if applyErr != nil {
		entry.Error = applyErr.Error()
	}

	if err = change.Create(s.db, entry); err != nil {
		log.Error().Err(err).Str("zone", zone).Msg("can't write change journal")

		return 0
	}

	return entry.ID
}

// Notify asks the server to notify the slaves of zone.
func (s *Service) Notify(ctx context.Context, zone string) (*rrset.Result, error) {
	if NormalizeZoneName(zone) == "" {
		return nil, ErrZoneEmpty
	}

	return s.Zone(zone).Notify(ctx)
}

// AXFRRetrieve asks the server to retrieve a slave zone from its master.
func (s *Service) AXFRRetrieve(ctx context.Context, zone string) (*rrset.Result, error) {
	if NormalizeZoneName(zone) == "" {
		return nil, ErrZoneEmpty
	}

	return s.Zone(zone).AXFRRetrieve(ctx)
}

// History returns the newest journal entries of zone.
func (s *Service) History(zone string, limit int) ([]models.Change, error) {
	return change.List(s.db, NormalizeZoneName(zone), limit)
}

func logEvent(err error) *zerolog.Event {
	if err != nil {
		return log.Error().Err(err)
	}

	return log.Info()
}
