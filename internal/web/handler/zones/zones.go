// Package zones provides read-only JSON handlers for zones and their records.
package zones

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/powerdns"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/reconcile"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/web/handler"
)

const (
	// ListPath lists all zone names.
	ListPath = "/zones"

	// Path shows the records of one zone.
	Path = handler.ZonePath

	defaultTimeout = 60 * time.Second
)

// Zone is the payload of a zone lookup.
type Zone struct {
	Name    string           `json:"name"`
	Records []powerdns.Entry `json:"records"`
}

// Service is the zone handler service.
type Service struct {
	engine *powerdns.Engine
}

// Init registers the routes.
func (s *Service) Init(router fiber.Router, deps handler.Deps) error {
	if router == nil || deps.Engine == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return nil
	}

	s.engine = deps.Engine

	router.Get(ListPath, s.List)
	router.Get(Path, s.Get)

	return nil
}

// List returns the zone names of the server.
func (s *Service) List(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	names, err := s.engine.ZoneNames(ctx)
	if err != nil {
		return handler.Fail(c, err, nil)
	}

	return handler.OK(c, names)
}

// Get returns the flattened records of the zone.
func (s *Service) Get(c *fiber.Ctx) error {
	name := reconcile.NormalizeZoneName(c.Params("zone"))
	if name == "" {
		return handler.Fail(c, reconcile.ErrZoneEmpty, nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	entries, err := s.engine.Entries(ctx, name)
	if err != nil {
		return handler.Fail(c, err, nil)
	}

	return handler.OK(c, Zone{Name: name, Records: entries})
}
