package auth

import (
	"io"
	"os"
)

// ResolveOptions holds every possible source of API credentials. Empty
// strings and a nil reader mean "not supplied".
type ResolveOptions struct {
	APIKey    string
	APISecret string

	// KeyFile is a path to a JSON key file
	KeyFile string
	// KeyFileReader is an already open key file; it is read but not closed
	KeyFileReader io.Reader

	// LookupEnv defaults to os.LookupEnv
	LookupEnv func(string) (string, bool)
}

func (o ResolveOptions) hasExplicit() bool {
	return o.APIKey != "" || o.APISecret != ""
}

func (o ResolveOptions) hasKeyFile() bool {
	return o.KeyFile != "" || o.KeyFileReader != nil
}

// Resolve picks the credential from exactly one source: a key file, the
// explicit key and secret, or the COINBASE_API_KEY / COINBASE_API_SECRET
// environment variables, in that order. The environment is only consulted
// when neither of the other sources was supplied.
//
// Resolve returns (nil, nil) when no source provides anything; callers treat
// that as an unauthenticated client. Every failure is a *ConfigurationError.
func Resolve(opts ResolveOptions) (*Credential, error) {
	if opts.hasExplicit() && opts.hasKeyFile() {
		return nil, &ConfigurationError{
			Message: "Cannot specify both api_key and key_file in constructor",
			Err:     ErrConflictingSources,
		}
	}
	if opts.KeyFile != "" && opts.KeyFileReader != nil {
		return nil, &ConfigurationError{
			Field:   "key_file",
			Message: "specify either a key file path or an open key file, not both",
			Err:     ErrConflictingSources,
		}
	}

	var (
		key, secret string
		source      Source
	)

	switch {
	case opts.hasKeyFile():
		var (
			kf  *KeyFile
			err error
		)
		if opts.KeyFileReader != nil {
			kf, err = DecodeKeyFile(opts.KeyFileReader)
		} else {
			kf, err = LoadKeyFile(opts.KeyFile)
		}
		if err != nil {
			return nil, err
		}
		key, secret, source = kf.Name, kf.PrivateKey, SourceKeyFile

	case opts.hasExplicit():
		key, secret, source = opts.APIKey, opts.APISecret, SourceExplicit

	default:
		lookup := opts.LookupEnv
		if lookup == nil {
			lookup = os.LookupEnv
		}
		key, _ = lookup(APIKeyEnv)
		secret, _ = lookup(APISecretEnv)
		source = SourceEnv
	}

	switch {
	case key != "" && secret != "":
	case key != "":
		return nil, &ConfigurationError{
			Field:   "api_secret",
			Message: "Only api_key provided. Please also provide api_secret",
			Err:     ErrIncompleteCredential,
		}
	case secret != "":
		return nil, &ConfigurationError{
			Field:   "api_key",
			Message: "Only api_secret provided. Please also provide api_key",
			Err:     ErrIncompleteCredential,
		}
	case source == SourceKeyFile:
		return nil, &ConfigurationError{
			Field:   "key_file",
			Message: "key file has an empty name and privateKey",
			Err:     ErrKeyFileMissingField,
		}
	default:
		return nil, nil
	}

	decoded, err := UnescapeSecret(secret)
	if err != nil {
		return nil, &ConfigurationError{
			Field:   "api_secret",
			Message: err.Error(),
			Err:     err,
		}
	}

	return &Credential{
		Key:    key,
		Secret: decoded,
		Source: source,
	}, nil
}
