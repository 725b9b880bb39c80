package client

import (
	"time"
)

// NewClientFromEnv creates a client whose credential comes from the
// COINBASE_API_KEY and COINBASE_API_SECRET environment variables.
// This is a convenience wrapper around NewClient
func NewClientFromEnv(baseURL string, timeout time.Duration) (*Client, error) {
	return NewClient(Config{
		BaseURL: baseURL,
		Timeout: timeout,
	})
}

// NewClientFromKeyFile creates a client from a JSON key file on disk
func NewClientFromKeyFile(path, baseURL string, timeout time.Duration) (*Client, error) {
	return NewClient(Config{
		KeyFile: path,
		BaseURL: baseURL,
		Timeout: timeout,
	})
}
