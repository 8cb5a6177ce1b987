// Package client implements the PowerDNS HTTP API transport used by the
// rrset package: JSON requests authenticated with X-API-Key and API version
// detection.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	// VersionAuto lets Open detect the API version of the server.
	VersionAuto = -1

	defaultTimeout = 30 * time.Second

	headerAPIKey = "X-API-Key" //nolint:gosec
)

// Config holds the connection settings.
type Config struct {
	URL     string        // base url of the server, e.g. http://127.0.0.1:8081
	APIKey  string        // value of the X-API-Key header
	Version int           // API version, VersionAuto to detect
	Timeout time.Duration // per request timeout, 0 for the default
}

// Client talks JSON to a PowerDNS server.
type Client struct {
	baseURL string
	apiKey  string
	version int
	http    *http.Client
}

// New creates a Client without contacting the server.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, ErrEmptyURL
	}

	if cfg.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		version: cfg.Version,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// Open creates a Client and detects the API version if cfg asks for it.
func Open(ctx context.Context, cfg Config) (*Client, error) {
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Version == VersionAuto {
		if _, err = c.Detect(ctx); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Version returns the API version in use. It is VersionAuto until Detect succeeded.
func (c *Client) Version() int {
	return c.version
}

// apiVersion is one entry of the /api listing.
type apiVersion struct {
	URL     string `json:"url"`
	Version int    `json:"version"`
}

// Detect asks the server for its API versions and uses the highest one.
// Servers without the /api listing speak version 0.
func (c *Client) Detect(ctx context.Context) (int, error) {
	var versions []apiVersion

	err := c.do(ctx, http.MethodGet, c.baseURL+"/api", nil, &versions)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		c.version = 0
		log.Debug().Str("url", c.baseURL).Msg("no /api listing, using PowerDNS API version 0")

		return c.version, nil
	}

	if err != nil {
		return VersionAuto, errors.Wrap(err, "detect api version")
	}

	if len(versions) == 0 {
		return VersionAuto, ErrNoAPIVersion
	}

	highest := versions[0].Version
	for _, v := range versions[1:] {
		if v.Version > highest {
			highest = v.Version
		}
	}

	c.version = highest
	log.Debug().Str("url", c.baseURL).Int("version", highest).Msg("detected PowerDNS API version")

	return c.version, nil
}

// Get decodes the response for path into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, c.url(path), nil, out)
}

// Put sends body to path and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, c.url(path), body, out)
}

// Patch sends body to path and decodes the response into out.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, c.url(path), body, out)
}

func (c *Client) url(path string) string {
	prefix := ""
	if c.version > 0 {
		prefix = fmt.Sprintf("/api/v%d", c.version)
	}

	return c.baseURL + prefix + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	var bodyReader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshal request body")
		}

		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}

	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, url)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "read %s %s response", method, url)
	}

	log.Trace().
		Str("method", method).
		Str("url", url).
		Int("status", resp.StatusCode).
		Int("bytes", len(data)).
		Msg("PowerDNS API call")

	if apiErr := decodeError(resp.StatusCode, data); apiErr != nil {
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err = json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "decode %s %s response", method, url)
	}

	return nil
}

// decodeError returns an APIError for error statuses and for bodies
// carrying an error field.
func decodeError(status int, data []byte) *APIError {
	var body struct {
		Error string `json:"error"`
	}

	// non-object bodies simply have no error field
	_ = json.Unmarshal(data, &body)

	if body.Error == "" && status < http.StatusBadRequest {
		return nil
	}

	msg := body.Error
	if msg == "" {
		msg = strings.TrimSpace(string(data))
	}

	if msg == "" {
		msg = http.StatusText(status)
	}

	return &APIError{StatusCode: status, Message: msg}
}
