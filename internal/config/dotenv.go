package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const envFileName = ".env"

// FindEnvFile looks for a .env file in startDir and then in each parent
// directory up to the filesystem root. It returns "" when none exists.
func FindEnvFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", startDir, err)
	}

	for {
		candidate := filepath.Join(dir, envFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %s: %w", candidate, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadEnvFile loads variables from path without overriding variables that
// are already set in the process environment.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	slog.Info("loaded environment file", "path", path)
	return nil
}

// LoadDotEnv finds and loads the nearest .env starting at startDir.
// A missing file is not an error; the returned path is empty in that case.
func LoadDotEnv(startDir string) (string, error) {
	path, err := FindEnvFile(startDir)
	if err != nil || path == "" {
		return "", err
	}
	if err := LoadEnvFile(path); err != nil {
		return "", err
	}
	return path, nil
}
