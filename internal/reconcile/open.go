package reconcile

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/config"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/pdns/client"
)

// Open connects to the configured server, detecting the API version
// unless it is pinned, and returns a Service journaling into db.
func Open(ctx context.Context, cfg config.PowerDNS, db *gorm.DB) (*Service, error) {
	version, err := cfg.Version()
	if err != nil {
		return nil, err
	}

	c, err := client.Open(ctx, client.Config{
		URL:     cfg.URL,
		APIKey:  cfg.APIKey,
		Version: version,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to powerdns")
	}

	log.Debug().Str("url", cfg.URL).Int("api_version", c.Version()).Msg("powerdns client ready")

	return New(c, cfg.Server, db), nil
}

// APIVersion is the API version changes are formatted for.
func (s *Service) APIVersion() int {
	return s.client.Version()
}
