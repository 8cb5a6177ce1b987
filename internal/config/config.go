// Package config handles input from etc/main.toml, PDNS_RRSET_* environment
// variables and a JSON override.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix of environment variables overriding single keys.
	EnvPrefix = "PDNS_RRSET"

	// EnvConfigJSON names the environment variable holding a JSON override of the whole config.
	EnvConfigJSON = "PDNS_RRSET_CONFIG_JSON"

	// APIVersionAuto lets the client detect the API version.
	APIVersionAuto = "auto"

	// GormEngineSQLite stores the journal in a sqlite file.
	GormEngineSQLite = "sqlite"

	// GormEngineMySQL stores the journal in mysql.
	GormEngineMySQL = "mysql"

	// GormEnginePostgres stores the journal in postgres.
	GormEnginePostgres = "postgres"

	fileName = "main.toml"
)

// setDefaults registers every key, so that environment variables can override keys missing in the file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("devmode", false)
	v.SetDefault("title", "pdns-rrset")

	v.SetDefault("log.loglevel", "info")
	v.SetDefault("log.appname", "pdns-rrset")
	v.SetDefault("log.servicename", "pdns-rrset")
	v.SetDefault("log.reportcaller", false)
	v.SetDefault("log.enableaccesslogtoconsole", false)
	v.SetDefault("log.disablecheckalive", true)
	v.SetDefault("log.console.enabled", true)
	v.SetDefault("log.console.useconsolewriter", true)
	v.SetDefault("log.file.enabled", false)
	v.SetDefault("log.file.path", "./log")
	v.SetDefault("log.file.accesslog", "access.log")
	v.SetDefault("log.file.infolog", "info.log")
	v.SetDefault("log.file.errorlog", "error.log")
	v.SetDefault("log.file.maxsize", 100)  //nolint: mnd
	v.SetDefault("log.file.maxbackups", 3) //nolint: mnd
	v.SetDefault("log.file.maxage", 28)    //nolint: mnd

	v.SetDefault("powerdns.url", "http://127.0.0.1:8081")
	v.SetDefault("powerdns.apikey", "")
	v.SetDefault("powerdns.server", "localhost")
	v.SetDefault("powerdns.apiversion", APIVersionAuto)
	v.SetDefault("powerdns.timeout", 30*time.Second) //nolint: mnd

	v.SetDefault("db.gormengine", GormEngineSQLite)
	v.SetDefault("db.extras", "")
	v.SetDefault("db.host", "")
	v.SetDefault("db.port", 0)
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "pdns-rrset.db")

	v.SetDefault("webserver.port", 8080)      //nolint: mnd
	v.SetDefault("webserver.shutdowntime", 5) //nolint: mnd
}

// ReadConfig from the config directory path.
// A missing main.toml is not an error, defaults and environment apply.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	file := filepath.Join(path, fileName)

	switch _, err = os.Stat(file); {
	case err == nil:
		v.SetConfigFile(file)

		if err = v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrap(err, "failed to read main config file")
		}
	case os.IsNotExist(err):
		log.Debug().Str("file", file).Msg("no config file, using defaults and environment")
	default:
		return Config{}, errors.Wrap(err, "failed to stat main config file")
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read json config override")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer

	if err := toml.NewEncoder(&buffer).Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate the settings every command needs.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if strings.TrimSpace(c.PowerDNS.URL) == "" {
		return errors.Wrap(ErrEmptyPowerDNSURL, invalidErrMessage)
	}

	if c.PowerDNS.Server == "" {
		return errors.Wrap(ErrEmptyPowerDNSServer, invalidErrMessage)
	}

	if _, err := c.PowerDNS.Version(); err != nil {
		return errors.Wrap(err, invalidErrMessage)
	}

	switch c.DB.GormEngine {
	case GormEngineSQLite, GormEngineMySQL, GormEnginePostgres:
	default:
		return errors.Wrap(ErrUnknownGormEngine, invalidErrMessage)
	}

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	return nil
}
