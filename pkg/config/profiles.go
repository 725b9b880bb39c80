package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultProfileName is used when no profile is selected
const DefaultProfileName = "default"

// Profile is a named set of connection settings
type Profile struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url,omitempty"`
	KeyFile string `yaml:"key_file,omitempty"`
	Timeout string `yaml:"timeout,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
}

// TimeoutDuration parses Timeout as a duration or a number of seconds; an
// empty value means no timeout
func (p Profile) TimeoutDuration() (time.Duration, error) {
	d, err := parseTimeout(p.Timeout)
	if err != nil {
		return 0, fmt.Errorf("profile %s: %w", p.Name, err)
	}
	return d, nil
}

// Profiles holds the saved profiles
type Profiles struct {
	Profiles []Profile `yaml:"profiles"`
	Selected string    `yaml:"selected,omitempty"`
}

// Find returns the profile called name
func (c *Profiles) Find(name string) (Profile, bool) {
	for _, p := range c.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// Current returns the selected profile, falling back to "default"
func (c *Profiles) Current() (Profile, bool) {
	name := c.Selected
	if name == "" {
		name = DefaultProfileName
	}
	return c.Find(name)
}

// Add appends p, refusing duplicate names
func (c *Profiles) Add(p Profile) error {
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if _, exists := c.Find(p.Name); exists {
		return fmt.Errorf("profile %s already exists", p.Name)
	}
	if _, err := p.TimeoutDuration(); err != nil {
		return err
	}
	c.Profiles = append(c.Profiles, p)
	return nil
}

// Remove deletes the profile called name and clears the selection if it
// pointed at it
func (c *Profiles) Remove(name string) error {
	kept := make([]Profile, 0, len(c.Profiles))
	for _, p := range c.Profiles {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(c.Profiles) {
		return fmt.Errorf("profile %s not found", name)
	}
	c.Profiles = kept
	if c.Selected == name {
		c.Selected = ""
	}
	return nil
}

// ProfilesPath returns ~/.coinbase-client/profiles.yaml
func ProfilesPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".coinbase-client", "profiles.yaml"), nil
}

// LoadProfiles loads profiles from the default location
func LoadProfiles() (*Profiles, error) {
	path, err := ProfilesPath()
	if err != nil {
		return nil, err
	}
	return LoadProfilesFromFile(path)
}

// LoadProfilesFromFile loads profiles from a specific file
func LoadProfilesFromFile(path string) (*Profiles, error) {
	// If file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return getDefaultProfiles(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}

	var profiles Profiles
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse profiles file: %w", err)
	}

	return &profiles, nil
}

// SaveProfiles saves profiles to the default location
func SaveProfiles(profiles *Profiles) error {
	path, err := ProfilesPath()
	if err != nil {
		return err
	}
	return SaveProfilesToFile(path, profiles)
}

// SaveProfilesToFile saves profiles to path
func SaveProfilesToFile(path string, profiles *Profiles) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write profiles file: %w", err)
	}

	return nil
}

// getDefaultProfiles returns the profiles used before anything is saved
func getDefaultProfiles() *Profiles {
	return &Profiles{
		Profiles: []Profile{
			{
				Name:    DefaultProfileName,
				BaseURL: "api.coinbase.com",
			},
			{
				Name:    "sandbox",
				BaseURL: "api-sandbox.coinbase.com",
			},
		},
	}
}
