// Package powerdns wraps the typed go-powerdns client for read-only zone views.
package powerdns

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	pdnsapi "github.com/joeig/go-powerdns/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/config"
)

const (
	defaultTimeout = 30 * time.Second
)

// Engine lists zones and records through the versioned PowerDNS API.
type Engine struct {
	client  *pdnsapi.Client
	timeout time.Duration
}

// Entry is one record of a zone, flattened out of its RRset.
type Entry struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	TTL      uint32 `json:"ttl"`
	Content  string `json:"content"`
	Disabled bool   `json:"disabled"`
	Comment  string `json:"comment,omitempty"`
}

// Open initializes the PowerDNS client from the config.
func Open(cfg config.PowerDNS) *Engine {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := pdnsapi.New(
		strings.TrimRight(cfg.URL, "/"),
		cfg.Server,
		pdnsapi.WithAPIKey(cfg.APIKey),
		pdnsapi.WithHTTPClient(&http.Client{Timeout: timeout}),
	)

	return &Engine{client: client, timeout: timeout}
}

// Test checks the API connection by listing zones.
func (e *Engine) Test(ctx context.Context) error {
	if e == nil || e.client == nil {
		return ErrClientNotInitialized
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	zones, err := e.client.Zones.List(ctx)
	if err != nil {
		return errors.Wrap(err, "powerdns api connection test failed")
	}

	log.Info().Int("zone_count", len(zones)).Msg("PowerDNS API connection test successful")

	return nil
}

// ZoneNames returns the sorted names of all zones on the server.
func (e *Engine) ZoneNames(ctx context.Context) ([]string, error) {
	if e == nil || e.client == nil {
		return nil, ErrClientNotInitialized
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	zones, err := e.client.Zones.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list zones")
	}

	names := make([]string, 0, len(zones))

	for _, zone := range zones {
		if zone.Name != nil {
			names = append(names, *zone.Name)
		}
	}

	sort.Strings(names)

	return names, nil
}

// Entries returns every record of zone sorted by name and type.
func (e *Engine) Entries(ctx context.Context, zone string) ([]Entry, error) {
	if e == nil || e.client == nil {
		return nil, ErrClientNotInitialized
	}

	if strings.TrimSpace(zone) == "" {
		return nil, ErrZoneNameEmpty
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	z, err := e.client.Zones.Get(ctx, zone)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get zone %s", zone)
	}

	entries := extractEntries(z.RRsets)

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}

		return entries[i].Type < entries[j].Type
	})

	return entries, nil
}

// extractEntries flattens RRsets into one entry per record.
func extractEntries(rrSets []pdnsapi.RRset) []Entry {
	var entries []Entry

	for _, rrSet := range rrSets {
		// Skip RRsets with missing name or type
		if rrSet.Name == nil || rrSet.Type == nil {
			continue
		}

		comment := ""
		if len(rrSet.Comments) > 0 && rrSet.Comments[0].Content != nil {
			comment = *rrSet.Comments[0].Content
		}

		for _, rec := range rrSet.Records {
			entry := Entry{
				Name:    *rrSet.Name,
				Type:    string(*rrSet.Type),
				Comment: comment,
			}

			if rrSet.TTL != nil {
				entry.TTL = *rrSet.TTL
			}

			if rec.Content != nil {
				entry.Content = *rec.Content
			}

			if rec.Disabled != nil {
				entry.Disabled = *rec.Disabled
			}

			entries = append(entries, entry)
		}
	}

	return entries
}
