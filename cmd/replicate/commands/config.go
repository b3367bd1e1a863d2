package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fivetwenty-io/replicate-client/internal/constants"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the persisted CLI configuration stored at
// ~/.replicate/config.yml.
type Config struct {
	Token      string `yaml:"token,omitempty"`
	BaseURL    string `yaml:"base_url,omitempty"`
	WebhookURL string `yaml:"webhook_url,omitempty"`
	Output     string `yaml:"output,omitempty"`
}

var configMutex sync.Mutex

// loadConfig builds the effective configuration from viper, which has
// already merged the config file, environment, and flags.
func loadConfig() *Config {
	return &Config{
		Token:      viper.GetString("token"),
		BaseURL:    viper.GetString("base_url"),
		WebhookURL: viper.GetString("webhook_url"),
		Output:     viper.GetString("output"),
	}
}

// saveConfigStruct writes the configuration back to the config file.
func saveConfigStruct(config *Config) error {
	configMutex.Lock()
	defer configMutex.Unlock()

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configDir := filepath.Join(home, constants.ConfigDirName)

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		configFile = filepath.Join(configDir, constants.ConfigFileName)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
