package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/logger"
)

func TestLogger(t *testing.T) {
	type testCase struct {
		name             string
		cfg              logger.Log
		shouldHaveOutPut bool
		outPutIsJSON     bool
	}

	testCases := []testCase{
		{
			name: "no logger enabled log level not set",
			cfg: logger.Log{
				LogLevel:    "",
				ServiceName: "test",
				AppName:     "test",
			},
			shouldHaveOutPut: false,
		},
		{
			name: "console enabled log level info",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true},
			},
			shouldHaveOutPut: true,
		},
		{
			name: "console enabled console writer enabled",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true, UseConsoleWriter: true},
			},
			shouldHaveOutPut: true,
		},
		{
			name: "console enabled console writer disabled info expect json",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true, UseConsoleWriter: false},
			},
			shouldHaveOutPut: true,
			outPutIsJSON:     true,
		},
		{
			name: "console enabled console writer disabled trace expect json stack",
			cfg: logger.Log{
				LogLevel:     "trace",
				ServiceName:  "test",
				AppName:      "test",
				ReportCaller: true,
				Console:      logger.Console{Enabled: true, UseConsoleWriter: false},
			},
			shouldHaveOutPut: true,
			outPutIsJSON:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := testLoggerConfig(t, tc.cfg)

			if tc.shouldHaveOutPut {
				assert.NotEmpty(t, out)
			}

			if !tc.outPutIsJSON {
				return
			}

			for _, line := range strings.Split(out, "\n") {
				if line == "" {
					continue
				}

				var entry struct {
					Level   string `json:"level"`
					App     string `json:"app"`
					Message string `json:"message"`
				}

				require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
				assert.Equal(t, "test", entry.App)
			}
		})
	}
}

func TestInitErrors(t *testing.T) {
	err := logger.Init(logger.Log{LogLevel: "loud", ServiceName: "test", AppName: "test"})
	require.Error(t, err)

	err = logger.Init(logger.Log{LogLevel: "info", AppName: "test"})
	require.ErrorIs(t, err, logger.ErrServiceNameIsEmpty)

	err = logger.Init(logger.Log{LogLevel: "info", ServiceName: "test"})
	require.ErrorIs(t, err, logger.ErrAppNameIsEmpty)
}

func TestFileLogger(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "log")

	err := logger.Init(logger.Log{
		LogLevel:    "info",
		ServiceName: "test",
		AppName:     "test",
		File: logger.LogFile{
			Enabled:  true,
			Path:     dir,
			InfoLog:  "info.log",
			ErrorLog: "error.log",
			MaxSize:  1,
		},
	})
	require.NoError(t, err)

	log.Info().Msg("info line")
	log.Error().Msg("error line")

	info, err := os.ReadFile(filepath.Join(dir, "info.log"))
	require.NoError(t, err)
	assert.Contains(t, string(info), "info line")
	assert.NotContains(t, string(info), "error line")

	errs, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	assert.Contains(t, string(errs), "error line")
}

func TestLevelWriter(t *testing.T) {
	var info, errs bytes.Buffer

	lw := &logger.LevelWriter{InfoWriter: &info, ErrorWriter: &errs}

	_, _ = lw.WriteLevel(zerolog.DebugLevel, []byte("debug\n"))
	_, _ = lw.WriteLevel(zerolog.InfoLevel, []byte("info\n"))
	_, _ = lw.WriteLevel(zerolog.WarnLevel, []byte("warn\n"))
	_, _ = lw.WriteLevel(zerolog.ErrorLevel, []byte("error\n"))
	_, _ = lw.WriteLevel(zerolog.Disabled, []byte("disabled\n"))
	_, _ = lw.Write([]byte("plain\n"))

	assert.Equal(t, "debug\ninfo\nplain\n", info.String())
	assert.Equal(t, "warn\nerror\n", errs.String())
}

func TestPrometheusHook(t *testing.T) {
	require.NoError(t, logger.Init(logger.Log{LogLevel: "info", ServiceName: "test", AppName: "test"}))

	warnings := logger.Counter().WithLabelValues("warn")
	before := testutil.ToFloat64(warnings)

	log.Warn().Msg("counted")
	log.Debug().Msg("below level, not counted")

	assert.InDelta(t, before+1, testutil.ToFloat64(warnings), 0)
}

func alwaysErrFunc() error {
	return errors.New("a test error") //nolint:goerr113
}

func testLoggerConfig(t *testing.T, cfg logger.Log) string {
	t.Helper()
	// keep default std out
	stdout := os.Stdout
	stderr := os.Stderr

	// capture stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	os.Stderr = w

	err := logger.Init(cfg)
	if err != nil {
		t.Error(err)
	}

	log.Info().Msg("this info message should be seen...")
	log.Error().Err(alwaysErrFunc()).Msg("this err message should be seen...")
	log.Trace().Err(alwaysErrFunc()).Msg("this trace message should be seen...")

	outC := make(chan string)
	// copy the output in a separate goroutine so printing can't block indefinitely
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	// back to normal state
	_ = w.Close()
	os.Stdout = stdout // restoring the real stdout
	os.Stderr = stderr // restoring the real stderr
	out := <-outC

	return out
}
