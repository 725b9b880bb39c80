package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/picogrid/coinbase-client/pkg/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage connection profiles",
	Long:  `Manage named connection profiles stored in ~/.coinbase-client/profiles.yaml`,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured profiles",
	RunE:  listProfiles,
}

var profileAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new profile",
	RunE:  addProfile,
}

var profileRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a profile",
	RunE:  removeProfile,
}

var profileUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Select the profile used by default",
	Args:  cobra.ExactArgs(1),
	RunE:  useProfile,
}

func init() {
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileRemoveCmd)
	profileCmd.AddCommand(profileUseCmd)
}

func listProfiles(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadProfiles()
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	if len(cfg.Profiles) == 0 {
		fmt.Println("No profiles configured")
		return nil
	}

	current, _ := cfg.Current()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, " \tNAME\tBASE URL\tKEY FILE\tTIMEOUT")
	_, _ = fmt.Fprintln(w, " \t----\t--------\t--------\t-------")

	for _, p := range cfg.Profiles {
		marker := " "
		if p.Name == current.Name {
			marker = "*"
		}
		keyFile := p.KeyFile
		if keyFile == "" {
			keyFile = "(environment)"
		}
		timeout := p.Timeout
		if timeout == "" {
			timeout = "none"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", marker, p.Name, p.BaseURL, keyFile, timeout)
	}

	return w.Flush()
}

func addProfile(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadProfiles()
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	var p config.Profile

	// Prompt for name
	namePrompt := &survey.Input{
		Message: "Profile name:",
	}
	if err := survey.AskOne(namePrompt, &p.Name, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	// Check if name already exists
	if _, exists := cfg.Find(p.Name); exists {
		return fmt.Errorf("profile %s already exists", p.Name)
	}

	urlPrompt := &survey.Input{
		Message: "API base URL:",
		Default: "api.coinbase.com",
	}
	if err := survey.AskOne(urlPrompt, &p.BaseURL, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	// Prompt for credential source
	authPrompt := &survey.Select{
		Message: "Credential source:",
		Options: []string{"Key file", "Environment variables"},
		Default: "Key file",
	}
	var source string
	if err := survey.AskOne(authPrompt, &source); err != nil {
		return err
	}

	if source == "Key file" {
		keyFilePrompt := &survey.Input{
			Message: "Key file path:",
			Help:    "JSON file with \"name\" and \"privateKey\" fields",
		}
		if err := survey.AskOne(keyFilePrompt, &p.KeyFile, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	timeoutPrompt := &survey.Input{
		Message: "Request timeout (empty for none):",
		Help:    "A duration such as 30s, or a number of seconds",
	}
	if err := survey.AskOne(timeoutPrompt, &p.Timeout); err != nil {
		return err
	}

	if err := cfg.Add(p); err != nil {
		return err
	}

	if err := config.SaveProfiles(cfg); err != nil {
		return fmt.Errorf("failed to save profiles: %w", err)
	}

	fmt.Printf("Profile %s added successfully\n", p.Name)
	return nil
}

func removeProfile(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadProfiles()
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	if len(cfg.Profiles) == 0 {
		fmt.Println("No profiles to remove")
		return nil
	}

	// Build list of profile names
	names := make([]string, len(cfg.Profiles))
	for i, p := range cfg.Profiles {
		names[i] = p.Name
	}

	var selected string
	prompt := &survey.Select{
		Message: "Select profile to remove:",
		Options: names,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return err
	}

	var confirm bool
	confirmPrompt := &survey.Confirm{
		Message: fmt.Sprintf("Are you sure you want to remove %s?", selected),
		Default: false,
	}
	if err := survey.AskOne(confirmPrompt, &confirm); err != nil {
		return err
	}

	if !confirm {
		fmt.Println("Removal cancelled")
		return nil
	}

	if err := cfg.Remove(selected); err != nil {
		return err
	}

	if err := config.SaveProfiles(cfg); err != nil {
		return fmt.Errorf("failed to save profiles: %w", err)
	}

	fmt.Printf("Profile %s removed successfully\n", selected)
	return nil
}

func useProfile(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadProfiles()
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	if _, ok := cfg.Find(args[0]); !ok {
		return fmt.Errorf("profile %s not found", args[0])
	}
	cfg.Selected = args[0]

	if err := config.SaveProfiles(cfg); err != nil {
		return fmt.Errorf("failed to save profiles: %w", err)
	}

	fmt.Printf("Now using profile %s\n", args[0])
	return nil
}
