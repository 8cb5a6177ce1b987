package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/pdns/client"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/reconcile"
)

// Response is the envelope of every JSON answer.
type Response struct {
	Success bool   `json:"success"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`

	// UpstreamStatus is the HTTP status PowerDNS answered with, if any.
	UpstreamStatus int `json:"upstream_status,omitempty"`
}

// OK sends payload with status 200.
func OK(c *fiber.Ctx, payload any) error {
	return c.JSON(Response{Success: true, Payload: payload})
}

// Fail sends err with the status matching its cause.
// Input errors are 400, everything PowerDNS or the network caused is 502.
// payload is included, so a rejected patch can be inspected.
func Fail(c *fiber.Ctx, err error, payload any) error {
	resp := Response{Error: err.Error(), Payload: payload}
	status := StatusFor(err)

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		resp.UpstreamStatus = apiErr.StatusCode
	}

	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}

	return c.Status(status).JSON(resp)
}

// BadRequest sends a 400 with msg.
func BadRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Response{Error: msg})
}

// StatusFor maps err to an HTTP status.
func StatusFor(err error) int {
	if reconcile.IsInvalidInput(err) {
		return fiber.StatusBadRequest
	}

	return fiber.StatusBadGateway
}
