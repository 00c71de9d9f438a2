// Package utils holds the file and TOML helpers behind pkg/config.
package utils

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// FileExists reports whether path can be stat'ed.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates dirPath and any missing parents.
func EnsureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0755)
}

// WritableDir creates dirPath if needed and reports whether a file can be
// written into it.
func WritableDir(dirPath string) bool {
	if err := EnsureDir(dirPath); err != nil {
		log.Warnf("Cannot create directory %s: %v", dirPath, err)
		return false
	}
	f, err := os.CreateTemp(dirPath, ".write_test")
	if err != nil {
		log.Warnf("Cannot write to directory %s: %v", dirPath, err)
		return false
	}
	f.Close()
	os.Remove(f.Name())
	return true
}

// SaveTOMLFile encodes data as TOML into filePath, replacing it.
func SaveTOMLFile(data any, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		log.Errorf("Failed to create file: %v", err)
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(data)
}

// GetAbsolutePath resolves configPath against the working directory.
func GetAbsolutePath(configPath string) string {
	if configPath == "" {
		return "unknown"
	}
	if abs, err := filepath.Abs(configPath); err == nil {
		return abs
	}
	return configPath
}

// GetExecutableDir returns the directory of the running binary, the last
// place a config file can live.
func GetExecutableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(execPath), nil
}
