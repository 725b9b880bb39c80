package auth

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by ConfigurationError
var (
	ErrConflictingSources   = errors.New("cannot specify both api_key and key_file")
	ErrIncompleteCredential = errors.New("incomplete credential")
	ErrKeyFileDecode        = errors.New("error decoding JSON")
	ErrKeyFileMissingField  = errors.New("key file missing field")
	ErrInvalidEscape        = errors.New("invalid escape sequence in api_secret")
)

// ConfigurationError reports invalid client configuration detected at
// construction time.
type ConfigurationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("configuration error on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is, or wraps, a ConfigurationError
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
