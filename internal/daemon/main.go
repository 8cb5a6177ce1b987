// Package daemon wires the journal, the PowerDNS clients and the web service.
package daemon

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/config"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/db"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/powerdns"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/reconcile"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/web"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/web/handler"
)

// ErrConfigNil is returned by New without a config.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	webService *web.Service
}

// Start serves until SIGINT or SIGTERM.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)

	log.Info().Str("addr", addr).Msg("starting web service")

	go d.webService.WaitShutdown()

	defer d.Close()

	return d.webService.Start(addr)
}

// Close releases the journal database.
func (d *Daemon) Close() {
	sqlDB, err := d.db.DB()
	if err != nil {
		return
	}

	if err = sqlDB.Close(); err != nil {
		log.Error().Err(err).Msg("can't close journal database")
	}
}

// New creates a new Daemon instance with the provided configuration.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	journal, err := db.Open(cfg.DB)
	if err != nil {
		return nil, err
	}

	reconciler, err := reconcile.Open(ctx, cfg.PowerDNS, journal)
	if err != nil {
		return nil, err
	}

	engine := powerdns.Open(cfg.PowerDNS)
	if err = engine.Test(ctx); err != nil {
		// zone listing needs API v1, changes work without it
		log.Warn().Err(err).Msg("typed PowerDNS API is not reachable")
	}

	return &Daemon{
		cfg: cfg,
		db:  journal,
		webService: web.New(handler.Deps{
			Cfg:        cfg,
			Reconciler: reconciler,
			Engine:     engine,
		}),
	}, nil
}
