package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/picogrid/coinbase-client/pkg/client"
	"github.com/picogrid/coinbase-client/pkg/config"
	"github.com/picogrid/coinbase-client/pkg/logger"
)

var (
	cfgFile   string
	apiKey    string
	apiSecret string
	logLevel  string
	noColor   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "coinbase-client",
	Short: "Coinbase API credential and connection helper",
	Long: `coinbase-client resolves API credentials from flags, environment
variables or a downloaded key file, and manages named connection profiles.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.coinbase-client/config.yaml)")
	flags.String("profile", "", "profile name to use")
	flags.String("base-url", "", "API base URL (overrides profile)")
	flags.String("key-file", "", "path to a JSON key file")
	flags.String("timeout", "", "request timeout, e.g. 30s or 30")
	flags.Bool("verbose", false, "log how the client was configured")
	flags.StringVar(&apiKey, "api-key", "", "API key name (default $COINBASE_API_KEY)")
	flags.StringVar(&apiSecret, "api-secret", "", "API private key (default $COINBASE_API_SECRET)")
	flags.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")

	for key, flag := range map[string]string{
		config.KeyProfile: "profile",
		config.KeyBaseURL: "base-url",
		config.KeyKeyFile: "key-file",
		config.KeyTimeout: "timeout",
		config.KeyVerbose: "verbose",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	// Add commands
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(keyfileCmd)
	rootCmd.AddCommand(profileCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	// Configure logger based on flags
	logger.SetLevel(logger.ParseLevel(logLevel))
	logger.SetNoColor(noColor)

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in home directory
		viper.AddConfigPath("$HOME/.coinbase-client")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	config.BindEnv(viper.GetViper())

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		logger.Debugf("Using config file %s", viper.ConfigFileUsed())
	}
}

// selectedProfile returns the profile named by --profile / COINBASE_PROFILE,
// or the saved selection. A profile that was asked for by name must exist.
func selectedProfile(settings config.Settings) (config.Profile, error) {
	profiles, err := config.LoadProfiles()
	if err != nil {
		return config.Profile{}, fmt.Errorf("failed to load profiles: %w", err)
	}

	if settings.Profile != "" {
		p, ok := profiles.Find(settings.Profile)
		if !ok {
			return config.Profile{}, fmt.Errorf("profile %s not found", settings.Profile)
		}
		return p, nil
	}

	p, _ := profiles.Current()
	return p, nil
}

// buildClient layers flags, environment, config file and profile into a
// client.Config and constructs the client
func buildClient() (*client.Client, config.Settings, error) {
	settings, err := config.LoadSettings(viper.GetViper())
	if err != nil {
		return nil, settings, fmt.Errorf("failed to load settings: %w", err)
	}

	profile, err := selectedProfile(settings)
	if err != nil {
		return nil, settings, err
	}

	// A profile key file must not clash with credentials given on the
	// command line; only an explicit --key-file does.
	if apiKey != "" || apiSecret != "" {
		profile.KeyFile = ""
	}

	settings, err = settings.Apply(profile)
	if err != nil {
		return nil, settings, err
	}
	if settings.Profile == "" {
		settings.Profile = profile.Name
	}

	c, err := client.NewClient(client.Config{
		APIKey:    apiKey,
		APISecret: apiSecret,
		KeyFile:   settings.KeyFile,
		BaseURL:   settings.BaseURL,
		Timeout:   settings.Timeout,
		Verbose:   settings.Verbose,
	})
	if err != nil {
		return nil, settings, err
	}

	return c, settings, nil
}
