package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/config"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/powerdns"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/reconcile"
)

// Deps are the collaborators handlers are built from.
type Deps struct {
	Cfg        *config.Config
	Reconciler *reconcile.Service
	Engine     *powerdns.Engine
}

// Service is the interface for a web handler service.
type Service interface {
	Init(router fiber.Router, deps Deps) error
}
