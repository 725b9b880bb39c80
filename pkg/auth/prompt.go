package auth

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PromptCredential asks for an API key name and private key on the terminal.
// When COINBASE_API_KEY and COINBASE_API_SECRET are both set they are used
// without prompting; if only one is set, both are prompted for. When in is a terminal the private key is read without
// echo; otherwise it is read as a single line.
func PromptCredential(in *os.File, out io.Writer) (*Credential, error) {
	reader := bufio.NewReader(in)

	readSecret := func() (string, error) {
		return readLine(reader)
	}
	if term.IsTerminal(int(in.Fd())) {
		readSecret = func() (string, error) {
			secretBytes, err := term.ReadPassword(int(in.Fd()))
			_, _ = fmt.Fprintln(out) // New line after hidden input
			if err != nil {
				return "", fmt.Errorf("failed to read private key: %w", err)
			}
			return string(secretBytes), nil
		}
	}

	return promptCredential(reader, out, readSecret, os.LookupEnv)
}

func promptCredential(reader *bufio.Reader, out io.Writer, readSecret func() (string, error), lookup func(string) (string, bool)) (*Credential, error) {
	key, _ := lookup(APIKeyEnv)
	secret, _ := lookup(APISecretEnv)
	source := SourceEnv

	// A half-set environment pair is ignored so both values share one source
	if key == "" || secret == "" {
		source = SourceExplicit
		_, _ = fmt.Fprintln(out, "🔐 API Key Setup")
		_, _ = fmt.Fprintln(out, strings.Repeat("=", 50))

		_, _ = fmt.Fprint(out, "API key name: ")
		line, err := readLine(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key name: %w", err)
		}
		key = line

		_, _ = fmt.Fprint(out, "Private key: ")
		if secret, err = readSecret(); err != nil {
			return nil, err
		}
	} else {
		_, _ = fmt.Fprintln(out, "🔐 Using API credentials from environment")
	}

	cred, err := Resolve(ResolveOptions{
		APIKey:    key,
		APISecret: secret,
		LookupEnv: func(string) (string, bool) { return "", false },
	})
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, &ConfigurationError{
			Message: "no API key name or private key entered",
			Err:     ErrIncompleteCredential,
		}
	}
	cred.Source = source
	return cred, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
