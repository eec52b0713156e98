package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// envFiles are looked up next to the config file and in the working
// directory. Earlier files win because godotenv never overrides a variable
// that is already set.
var envFiles = []string{".env.local", ".env"}

// loadEnvFiles loads .env files for the config at configPath. Missing files are
// not an error.
func loadEnvFiles(configPath string) {
	dirs := []string{filepath.Dir(configPath)}
	if wd, err := os.Getwd(); err == nil {
		if abs, aerr := filepath.Abs(dirs[0]); aerr != nil || abs != wd {
			dirs = append(dirs, wd)
		}
	}
	for _, dir := range dirs {
		for _, name := range envFiles {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err != nil {
				continue
			}
			if err := godotenv.Load(p); err != nil {
				slog.Warn("Failed to load env file", slog.String("file", p), slog.String("error", err.Error()))
				continue
			}
			slog.Debug("Loaded environment variables", slog.String("file", p))
		}
	}
}

// expandEnv replaces ${VAR}, $VAR and ${VAR:-default} references.
func expandEnv(s string) string {
	return os.Expand(s, func(name string) string {
		key, def, hasDefault := strings.Cut(name, ":-")
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v
		}
		if hasDefault {
			return def
		}
		return ""
	})
}
