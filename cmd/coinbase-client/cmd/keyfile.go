package cmd

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/picogrid/coinbase-client/pkg/auth"
	"github.com/picogrid/coinbase-client/pkg/logger"
)

var keyfileCmd = &cobra.Command{
	Use:   "keyfile",
	Short: "Create and inspect API key files",
}

var keyfileInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write a key file from an API key name and private key",
	Long: `Prompt for an API key name and private key and store them as a JSON key
file. COINBASE_API_KEY and COINBASE_API_SECRET are used when set.`,
	Args: cobra.ExactArgs(1),
	RunE: initKeyFile,
}

var keyfileShowCmd = &cobra.Command{
	Use:   "show <path>",
	Short: "Validate a key file and print it with the private key masked",
	Args:  cobra.ExactArgs(1),
	RunE:  showKeyFile,
}

func init() {
	keyfileInitCmd.Flags().BoolP("force", "f", false, "overwrite an existing key file without asking")

	keyfileCmd.AddCommand(keyfileInitCmd)
	keyfileCmd.AddCommand(keyfileShowCmd)
}

func initKeyFile(cmd *cobra.Command, args []string) error {
	path := args[0]
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(path); err == nil && !force {
		var overwrite bool
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("%s already exists. Overwrite it?", path),
			Default: false,
		}
		if err := survey.AskOne(prompt, &overwrite); err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Key file unchanged")
			return nil
		}
	}

	cred, err := auth.PromptCredential(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	if err := auth.WriteKeyFile(path, &auth.KeyFile{Name: cred.Key, PrivateKey: cred.Secret}); err != nil {
		return err
	}

	logger.Successf("Key file written to %s", path)
	if cred.KeyType() == auth.KeyTypeUnknown {
		logger.Warn(logger.IconWarning + "  Private key is neither an EC PEM key nor an Ed25519 key")
	}
	return nil
}

func showKeyFile(cmd *cobra.Command, args []string) error {
	cred, err := auth.Resolve(auth.ResolveOptions{KeyFile: args[0]})
	if err != nil {
		return err
	}

	logger.LogSection(logger.IconKey + " " + args[0])
	logger.LogKeyValue("Credential", cred.Masked())
	logger.LogKeyValue("Key type", cred.KeyType())
	return nil
}
