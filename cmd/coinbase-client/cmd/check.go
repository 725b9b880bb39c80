package cmd

import (
	"github.com/spf13/cobra"

	"github.com/picogrid/coinbase-client/pkg/auth"
	"github.com/picogrid/coinbase-client/pkg/logger"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Show which credentials and settings would be used",
	Long: `Resolve credentials and connection settings exactly as a client would,
and print the result without contacting the API.`,
	Args: cobra.NoArgs,
	RunE: checkConfiguration,
}

func checkConfiguration(cmd *cobra.Command, args []string) error {
	c, settings, err := buildClient()
	if err != nil {
		return err
	}

	logger.LogSection("Client configuration")

	profile := settings.Profile
	if profile == "" {
		profile = "(none)"
	}
	logger.LogKeyValue("Profile", profile)
	logger.LogKeyValue("Base URL", c.BaseURL())

	timeout := "none"
	if c.Timeout() > 0 {
		timeout = c.Timeout().String()
	}
	logger.LogKeyValue("Timeout", timeout)
	logger.LogKeyValue("Client ID", c.ID())

	if !c.IsAuthenticated() {
		logger.LogKeyValue("Authenticated", false)
		logger.Warn(logger.IconWarning + "  No API credentials found. Set COINBASE_API_KEY and COINBASE_API_SECRET, or pass --key-file")
		return nil
	}

	cred := c.Credential()
	logger.LogKeyValue("Authenticated", true)
	logger.LogKeyValue("Source", cred.Source)
	logger.LogKeyValue("API key", cred.Key)
	logger.LogKeyValue("Private key", auth.MaskSecret(cred.Secret))
	logger.LogKeyValue("Key type", cred.KeyType())

	logger.Success("Credentials resolved")
	return nil
}
