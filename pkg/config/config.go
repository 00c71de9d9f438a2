/*
Package config manages TOML config for autocompose services.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/autocompose/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has IPC request limits.
// A zero length limit disables that check.
type ServerConfig struct {
	MaxTextLength       int  `toml:"max_text_length"`
	MaxCompletionLength int  `toml:"max_completion_length"`
	ValidateSelection   bool `toml:"validate_selection"`
}

// CliConfig holds the debug CLI options and its sample candidates.
type CliConfig struct {
	CursorMarker string   `toml:"cursor_marker"`
	Emoji        []string `toml:"emoji"`
	Streams      []string `toml:"streams"`
	Users        []string `toml:"users"`
}

// appDir is the directory name used under each config root.
const appDir = "autocompose"

// GetConfigDir returns the first writable config directory of:
// 1. ~/.config/autocompose
// 2. ~/Library/Application Support/autocompose (macOS)
// 3. the executable's dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	for _, root := range []string{
		filepath.Join(homeDir, ".config"),
		filepath.Join(homeDir, "Library", "Application Support"),
	} {
		if dir := filepath.Join(root, appDir); utils.WritableDir(dir) {
			return dir, nil
		}
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: GetConfigDir()/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxTextLength:       10000,
			MaxCompletionLength: 1000,
			ValidateSelection:   true,
		},
		CLI: CliConfig{
			CursorMarker: "|",
			Emoji:        []string{"smile", "smiley", "sweat_smile", "thumbs_up", "tada"},
			Streams:      []string{"announcements", "design", "general", "help"},
			Users:        []string{"alice", "bob", "carol", "security-team"},
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Fields missing from the file keep
// their defaults; a file that fails strict decoding is recovered per section.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	if cliSection, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(cliSection, &config.CLI)
	}
	return config, nil
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_text_length"); ok {
		server.MaxTextLength = val
	}
	if val, ok := utils.ExtractInt64(data, "max_completion_length"); ok {
		server.MaxCompletionLength = val
	}
	if val, ok := utils.ExtractBool(data, "validate_selection"); ok {
		server.ValidateSelection = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractString(data, "cursor_marker"); ok && val != "" {
		cli.CursorMarker = val
	}
	if val, ok := utils.ExtractStrings(data, "emoji"); ok {
		cli.Emoji = val
	}
	if val, ok := utils.ExtractStrings(data, "streams"); ok {
		cli.Streams = val
	}
	if val, ok := utils.ExtractStrings(data, "users"); ok {
		cli.Users = val
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
