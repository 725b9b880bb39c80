package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every setting read from the environment, so
// "base_url" is read from COINBASE_BASE_URL.
const EnvPrefix = "COINBASE"

// Setting keys shared by flags, the config file and the environment
const (
	KeyBaseURL = "base_url"
	KeyKeyFile = "key_file"
	KeyTimeout = "timeout"
	KeyVerbose = "verbose"
	KeyProfile = "profile"
)

// Settings are the connection settings after flags, environment and config
// file have been layered by viper
type Settings struct {
	Profile string
	BaseURL string
	KeyFile string
	Timeout time.Duration
	Verbose bool
}

// BindEnv makes v read COINBASE_* environment variables for every setting key
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
}

// LoadSettings reads Settings out of v
func LoadSettings(v *viper.Viper) (Settings, error) {
	timeout, err := parseTimeout(v.GetString(KeyTimeout))
	if err != nil {
		return Settings{}, err
	}

	return Settings{
		Profile: v.GetString(KeyProfile),
		BaseURL: v.GetString(KeyBaseURL),
		KeyFile: v.GetString(KeyKeyFile),
		Timeout: timeout,
		Verbose: v.GetBool(KeyVerbose),
	}, nil
}

// parseTimeout accepts a Go duration ("30s") or a bare number of seconds
func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		if secs < 0 || math.IsNaN(secs) || math.IsInf(secs, 0) {
			return 0, fmt.Errorf("invalid timeout %q", raw)
		}
		nanos := secs * float64(time.Second)
		if nanos >= float64(math.MaxInt64) {
			return 0, fmt.Errorf("timeout %q is too large", raw)
		}
		return time.Duration(nanos), nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must not be negative, got %s", raw)
	}
	return d, nil
}

// Apply fills every unset field of s from p. Values already in s win.
func (s Settings) Apply(p Profile) (Settings, error) {
	if s.BaseURL == "" {
		s.BaseURL = p.BaseURL
	}
	if s.KeyFile == "" {
		s.KeyFile = p.KeyFile
	}
	if s.Timeout == 0 {
		d, err := p.TimeoutDuration()
		if err != nil {
			return s, err
		}
		s.Timeout = d
	}
	s.Verbose = s.Verbose || p.Verbose
	return s, nil
}
