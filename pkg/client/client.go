package client

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/picogrid/coinbase-client/pkg/auth"
	"github.com/picogrid/coinbase-client/pkg/logger"
)

// DefaultBaseURL is the API host used when Config.BaseURL is empty
const DefaultBaseURL = "api.coinbase.com"

// Client holds the resolved credentials and connection settings shared by
// every API surface. It is immutable after NewClient returns.
type Client struct {
	id         uuid.UUID
	credential *auth.Credential
	baseURL    string
	timeout    time.Duration
	verbose    bool
	log        logger.Logger
}

// Config holds the configuration for the client
type Config struct {
	// APIKey and APISecret are an explicit credential. Leave both empty to
	// fall back to KeyFile or the COINBASE_API_KEY / COINBASE_API_SECRET
	// environment variables.
	APIKey    string
	APISecret string

	// KeyFile is the path of a JSON key file with "name" and "privateKey"
	KeyFile string
	// KeyFileReader is an open key file, read but not closed
	KeyFileReader io.Reader

	BaseURL string
	Timeout time.Duration // Zero means no timeout
	Verbose bool

	// Logger defaults to logger.GetLogger("coinbase.client")
	Logger logger.Logger

	// LookupEnv overrides os.LookupEnv, mostly for tests
	LookupEnv func(string) (string, bool)
}

// NewClient validates cfg and builds a client. Every failure is an
// *auth.ConfigurationError.
func NewClient(cfg Config) (*Client, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	if cfg.Timeout < 0 {
		return nil, &auth.ConfigurationError{
			Field:   "timeout",
			Message: fmt.Sprintf("timeout must not be negative, got %s", cfg.Timeout),
		}
	}

	cred, err := auth.Resolve(auth.ResolveOptions{
		APIKey:        cfg.APIKey,
		APISecret:     cfg.APISecret,
		KeyFile:       cfg.KeyFile,
		KeyFileReader: cfg.KeyFileReader,
		LookupEnv:     cfg.LookupEnv,
	})
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	log := cfg.Logger
	if log == nil {
		log = logger.GetLogger("coinbase.client")
	}
	log = log.WithField("client", id.String())

	c := &Client{
		id:         id,
		credential: cred,
		baseURL:    baseURL,
		timeout:    cfg.Timeout,
		verbose:    cfg.Verbose,
		log:        log,
	}

	if c.verbose {
		if cred != nil {
			c.log.Infof("authenticated with key %s from %s", cred.Key, cred.Source)
		} else {
			c.log.Info("no API credentials configured, only public endpoints are available")
		}
	}

	return c, nil
}

// normalizeBaseURL accepts a bare host ("api.coinbase.com") or an absolute
// URL and returns it without a trailing slash.
func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultBaseURL, nil
	}

	candidate := raw
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}

	u, err := url.Parse(candidate)
	if err != nil {
		return "", &auth.ConfigurationError{
			Field:   "base_url",
			Message: fmt.Sprintf("invalid base URL: %v", err),
			Err:     err,
		}
	}
	if u.Host == "" {
		return "", &auth.ConfigurationError{
			Field:   "base_url",
			Message: fmt.Sprintf("invalid base URL %q: missing host", raw),
		}
	}

	return strings.TrimRight(raw, "/"), nil
}

// ID identifies this client instance in log lines
func (c *Client) ID() uuid.UUID {
	return c.id
}

// IsAuthenticated reports whether a credential was resolved
func (c *Client) IsAuthenticated() bool {
	return c.credential != nil
}

// Credential returns the resolved credential, or nil when unauthenticated
func (c *Client) Credential() *auth.Credential {
	return c.credential
}

// APIKey returns the key name, or "" when unauthenticated
func (c *Client) APIKey() string {
	if c.credential == nil {
		return ""
	}
	return c.credential.Key
}

// APISecret returns the unescaped secret, or "" when unauthenticated
func (c *Client) APISecret() string {
	if c.credential == nil {
		return ""
	}
	return c.credential.Secret
}

// BaseURL returns the configured API host or URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the request timeout; zero means none
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Verbose reports whether verbose logging was requested
func (c *Client) Verbose() bool {
	return c.verbose
}

// Logger returns the client's logger, tagged with its ID
func (c *Client) Logger() logger.Logger {
	return c.log
}
