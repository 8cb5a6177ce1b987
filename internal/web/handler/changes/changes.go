// Package changes provides the JSON handler reading the change journal.
package changes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/db/controller/change"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/reconcile"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/web/handler"
)

const (
	// Path lists the journal of one zone.
	Path = handler.ZonePath + "/changes"

	// MaxLimit caps the limit query parameter.
	MaxLimit = 500
)

// Service is the change journal handler service.
type Service struct {
	reconciler *reconcile.Service
}

// Init registers the routes.
func (s *Service) Init(router fiber.Router, deps handler.Deps) error {
	if router == nil || deps.Reconciler == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return nil
	}

	s.reconciler = deps.Reconciler

	router.Get(Path, s.List)

	return nil
}

// List returns the newest journal entries of the zone, newest first.
func (s *Service) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", change.DefaultLimit)
	if limit < 1 || limit > MaxLimit {
		limit = change.DefaultLimit
	}

	entries, err := s.reconciler.History(c.Params("zone"), limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to read change journal")

		return c.Status(fiber.StatusInternalServerError).JSON(handler.Response{Error: err.Error()})
	}

	return handler.OK(c, entries)
}
