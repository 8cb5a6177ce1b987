// Package rrsets provides the JSON handler changing the RRsets of a zone.
package rrsets

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/pdns/rrset"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/reconcile"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/web/handler"
)

const (
	// Path is the route of RRset changes.
	Path = handler.ZonePath + "/rrsets/:verb"

	// NotifyPath triggers a NOTIFY for the zone.
	NotifyPath = handler.ZonePath + "/notify"

	// AXFRRetrievePath triggers a zone transfer from the master.
	AXFRRetrievePath = handler.ZonePath + "/axfr-retrieve"

	// ErrMsgBody is returned when the request body can not be decoded.
	ErrMsgBody = "request body must be {\"rrsets\": [...], \"dry_run\": bool}"
)

// Request is the body of an RRset change.
type Request struct {
	RRsets []rrset.RRsetInput `json:"rrsets"`
	DryRun bool               `json:"dry_run"`
}

// Service is the RRset change handler service.
type Service struct {
	reconciler *reconcile.Service
	timeout    time.Duration
}

// Init registers the routes.
func (s *Service) Init(router fiber.Router, deps handler.Deps) error {
	if router == nil || deps.Reconciler == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return nil
	}

	s.reconciler = deps.Reconciler

	if deps.Cfg != nil {
		s.timeout = deps.Cfg.PowerDNS.Timeout
	}

	router.Post(Path, s.Post)
	router.Post(NotifyPath, s.Notify)
	router.Post(AXFRRetrievePath, s.AXFRRetrieve)

	return nil
}

func (s *Service) context() (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(context.Background())
	}

	return context.WithTimeout(context.Background(), s.timeout)
}

// Post applies add, update or remove to the zone.
func (s *Service) Post(c *fiber.Ctx) error {
	verb, err := reconcile.ParseVerb(c.Params("verb"))
	if err != nil {
		return handler.Fail(c, err, nil)
	}

	var req Request
	if err = c.BodyParser(&req); err != nil {
		log.Debug().Err(err).Msg("can't decode rrset request")

		return handler.BadRequest(c, ErrMsgBody)
	}

	ctx, cancel := s.context()
	defer cancel()

	out, err := s.reconciler.Apply(ctx, c.Params("zone"), verb, req.RRsets, req.DryRun)
	if err != nil {
		var payload any
		if out != nil && out.Payload != nil {
			payload = out.Payload
		}

		return handler.Fail(c, err, payload)
	}

	return handler.OK(c, out)
}

// Notify sends a NOTIFY for the zone.
func (s *Service) Notify(c *fiber.Ctx) error {
	ctx, cancel := s.context()
	defer cancel()

	res, err := s.reconciler.Notify(ctx, c.Params("zone"))
	if err != nil {
		return handler.Fail(c, err, nil)
	}

	return handler.OK(c, res)
}

// AXFRRetrieve asks for a transfer of the zone.
func (s *Service) AXFRRetrieve(c *fiber.Ctx) error {
	ctx, cancel := s.context()
	defer cancel()

	res, err := s.reconciler.AXFRRetrieve(ctx, c.Params("zone"))
	if err != nil {
		return handler.Fail(c, err, nil)
	}

	return handler.OK(c, res)
}
