package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/subosito/gotenv"
)

const ENV_DIR = "config/envs"

// LoadEnv loads config/envs/.env.<env>.local and config/envs/.env.<env> into
// the process environment. Values already set win, so the OS beats .local
// and .local beats the shared file.
func LoadEnv(env string) []string {
	return LoadEnvFrom(ENV_DIR, env)
}

func LoadEnvFrom(dir, env string) []string {
	candidates := []string{
		filepath.Join(dir, ".env."+env+".local"),
		filepath.Join(dir, ".env."+env),
	}

	var loaded []string
	for _, file := range candidates {
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := gotenv.Load(file); err != nil {
			slog.Warn("Failed to load env file",
				slog.String("file", file),
				slog.String("error", err.Error()))
			continue
		}
		loaded = append(loaded, file)
	}

	if len(loaded) == 0 {
		slog.Warn("No .env file found, using OS environment",
			slog.String("env", env))
	}
	return loaded
}
