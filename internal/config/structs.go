package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	Title     string
	Log       logger.Log
	PowerDNS  PowerDNS
	DB        DB
	Webserver Webserver
}

// PowerDNS holds the connection settings of the PowerDNS API.
type PowerDNS struct {
	URL        string        // base url, e.g. http://127.0.0.1:8081
	APIKey     string        // X-API-Key header value
	Server     string        // server id, usually localhost
	APIVersion string        // auto, 0 (legacy) or 1
	Timeout    time.Duration // per request timeout
}

// Version returns the configured API version, -1 for auto detection.
func (p PowerDNS) Version() (int, error) {
	v := strings.TrimSpace(strings.ToLower(p.APIVersion))
	if v == "" || v == APIVersionAuto {
		return -1, nil
	}

	version, err := strconv.Atoi(v)
	if err != nil || version < 0 {
		return 0, ErrInvalidAPIVersion
	}

	return version, nil
}

// DB holds the settings of the change journal database.
type DB struct {
	GormEngine string // sqlite, mysql or postgres
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string // database name, file path for sqlite
}

// Webserver implement webserver settings.
type Webserver struct {
	Port         int // listening port for the webserver
	ShutDownTime int // wait time for shutdown
}
