package auth

import (
	"encoding/base64"
	"encoding/pem"
	"strings"
)

// Environment variables consulted when no credential is given explicitly
const (
	APIKeyEnv    = "COINBASE_API_KEY"
	APISecretEnv = "COINBASE_API_SECRET"
)

// Source identifies where a credential was resolved from
type Source string

const (
	SourceExplicit Source = "explicit"
	SourceEnv      Source = "environment"
	SourceKeyFile  Source = "key_file"
)

// KeyType describes the encoding of the private key in a credential
type KeyType string

const (
	KeyTypeECDSA   KeyType = "ecdsa"
	KeyTypeEd25519 KeyType = "ed25519"
	KeyTypeUnknown KeyType = "unknown"
)

// Credential is a resolved API key pair. Key and Secret are always both set.
type Credential struct {
	Key    string
	Secret string
	Source Source
}

// Masked returns the key name and a redacted secret, safe to print or log
func (c *Credential) Masked() string {
	return c.Key + " / " + MaskSecret(c.Secret)
}

// KeyType inspects the secret and reports how the private key is encoded
func (c *Credential) KeyType() KeyType {
	secret := strings.TrimSpace(c.Secret)

	if block, _ := pem.Decode([]byte(secret)); block != nil {
		if block.Type == "EC PRIVATE KEY" {
			return KeyTypeECDSA
		}
		return KeyTypeUnknown
	}

	raw, err := base64.StdEncoding.DecodeString(secret)
	if err == nil && len(raw) == 64 {
		return KeyTypeEd25519
	}
	return KeyTypeUnknown
}

// MaskSecret hides a secret. PEM keys are reduced to their block type, other
// secrets keep only their last four characters.
func MaskSecret(secret string) string {
	secret = strings.TrimSpace(secret)
	if block, _ := pem.Decode([]byte(secret)); block != nil {
		return "[" + block.Type + " redacted]"
	}
	if len(secret) <= 8 {
		return strings.Repeat("*", len(secret))
	}
	return "****" + secret[len(secret)-4:]
}
