package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file.
// If path is empty, it loads from ".env" in the current directory.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// LoadDotEnvFromFiles loads environment variables from several .env files in
// order. godotenv.Load never overrides a variable that is already set, so the
// first file that sets a variable wins. Missing files are skipped.
func LoadDotEnvFromFiles(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return err
		}
	}
	return nil
}

// LoadConfig loads configuration from a .env file (optional) and environment variables.
// Variables already set in the environment win over the .env file.
func LoadConfig(envPath string) (AppConfig, error) {
	if err := LoadDotEnv(envPath); err != nil {
		return AppConfig{}, err
	}

	envCfg, err := LoadFromEnv()
	if err != nil {
		return AppConfig{}, err
	}

	return envCfg.ToAppConfig(), nil
}
