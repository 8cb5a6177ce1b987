package config

import (
	"errors"
)

var (
	// ErrEmptyPowerDNSURL error if config powerdns.url is empty.
	ErrEmptyPowerDNSURL = errors.New("config powerdns.url can not be empty")

	// ErrEmptyPowerDNSServer error if config powerdns.server is empty.
	ErrEmptyPowerDNSServer = errors.New("config powerdns.server can not be empty")

	// ErrInvalidAPIVersion error if config powerdns.apiversion is neither auto nor a version number.
	ErrInvalidAPIVersion = errors.New("config powerdns.apiversion must be auto or a non negative number")

	// ErrUnknownGormEngine error if config db.gormengine is not supported.
	ErrUnknownGormEngine = errors.New("config db.gormengine must be sqlite, mysql or postgres")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port listening port can not be 0")
)
