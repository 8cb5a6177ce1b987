// Package web serves the JSON API, health check and metrics.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	fiberlogger "github.com/GoPowerDNS-Admin/pdns-rrset/internal/logger/adapter/fiber"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/web/handler"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/web/handler/changes"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/web/handler/rrsets"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/web/handler/zones"
)

const (
	// CheckAlivePath answers 200 while the service takes traffic.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes prometheus metrics.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	deps         handler.Deps
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address and blocks until it stops.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan error)

	go func() {
		err := s.App.Listen(addr)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}

		doneFiber <- err
	}()

	return <-doneFiber // wait for fiber to stop
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts the server down.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown fails the check alive for the configured time, then stops the server.
func (s *Service) Shutdown() {
	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.deps.Cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.deps.Cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// CheckAlive answers 200 until a shutdown started.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("OK")
}

// New creates a new web service with the given dependencies.
func New(deps handler.Deps) *Service {
	if deps.Cfg == nil {
		panic("config cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        deps.Cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	service := &Service{
		App:          app,
		deps:         deps,
		fastShutDown: deps.Cfg.DevMode || deps.Cfg.Webserver.ShutDownTime <= 0,
	}

	service.alive.Store(true)

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        deps.Cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	app.Get(CheckAlivePath, service.CheckAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group(handler.APIPath)

	for _, h := range []handler.Service{&rrsets.Service{}, &zones.Service{}, &changes.Service{}} {
		if err := h.Init(api, deps); err != nil {
			log.Fatal().Err(err).Msg("can't init handler")
		}
	}

	return service
}
