package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Env holds settings that can be overridden from the environment or a .env file
type Env struct {
	ConfigDir   string
	SavePath    string
	LogLevel    string
	ControlMode string
	Seed        int64
	HasSeed     bool
}

// LoadEnv reads the given .env files (default ".env") into the process
// environment, then collects the PETAL_* settings. Missing files are ignored.
func LoadEnv(files ...string) (Env, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Env{}, fmt.Errorf("failed to load env file: %w", err)
	}

	env := Env{
		ConfigDir:   os.Getenv("PETAL_CONFIG_DIR"),
		SavePath:    os.Getenv("PETAL_SAVE_PATH"),
		LogLevel:    getenvDefault("PETAL_LOG_LEVEL", "info"),
		ControlMode: getenvDefault("PETAL_CONTROL_MODE", "keyboard"),
	}

	if raw := os.Getenv("PETAL_SEED"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return env, fmt.Errorf("failed to parse PETAL_SEED %q: %w", raw, err)
		}
		env.Seed = seed
		env.HasSeed = true
	}

	return env, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
