package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// KeyFile is the JSON document downloaded when an API key is created
type KeyFile struct {
	Name       string `json:"name"`
	PrivateKey string `json:"privateKey"`
}

// LoadKeyFile reads and decodes the key file at path. The file is closed
// before LoadKeyFile returns.
func LoadKeyFile(path string) (*KeyFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigurationError{
			Field:   "key_file",
			Message: fmt.Sprintf("failed to open key file: %v", err),
			Err:     err,
		}
	}
	defer func() { _ = f.Close() }()

	return DecodeKeyFile(f)
}

func decodeError(err error) error {
	return &ConfigurationError{
		Field:   "key_file",
		Message: fmt.Sprintf("%v: %v", ErrKeyFileDecode, err),
		Err:     fmt.Errorf("%w: %w", ErrKeyFileDecode, err),
	}
}

// DecodeKeyFile decodes a key file from r. r is not closed. The input must
// hold exactly one JSON object; anything after it is a decode error.
func DecodeKeyFile(r io.Reader) (*KeyFile, error) {
	dec := json.NewDecoder(r)

	var raw map[string]json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = fmt.Errorf("extra data after key file object at offset %d", dec.InputOffset())
		}
		return nil, decodeError(err)
	}

	var kf KeyFile
	for _, field := range []struct {
		name string
		dst  *string
	}{
		{"name", &kf.Name},
		{"privateKey", &kf.PrivateKey},
	} {
		msg, ok := raw[field.name]
		if !ok {
			return nil, &ConfigurationError{
				Field:   "key_file",
				Message: fmt.Sprintf("key file has no %q field", field.name),
				Err:     ErrKeyFileMissingField,
			}
		}
		if bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
			return nil, &ConfigurationError{
				Field:   "key_file",
				Message: fmt.Sprintf("key file field %q is null", field.name),
				Err:     ErrKeyFileMissingField,
			}
		}
		if err := json.Unmarshal(msg, field.dst); err != nil {
			return nil, &ConfigurationError{
				Field:   "key_file",
				Message: fmt.Sprintf("%v: field %q is not a string", ErrKeyFileDecode, field.name),
				Err:     fmt.Errorf("%w: %w", ErrKeyFileDecode, err),
			}
		}
	}

	return &kf, nil
}

// WriteKeyFile writes kf to path with owner-only permissions, creating the
// parent directory if needed.
func WriteKeyFile(path string, kf *KeyFile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create key file directory: %w", err)
	}

	data, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal key file: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}

	return nil
}
