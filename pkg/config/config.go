package config

import (
	"os"
	"path"

	"go.uber.org/zap/zapcore"
)

// Settings holds the service-level configuration read from the environment
// at startup. Pipeline thresholds are per-request, not here.
type Settings struct {
	ListenAddr string
	DataDir    string // holds db/identifier_cache.db
	UniProtURL string
	EnrichrURL string
	LogLevel   zapcore.Level
}

const (
	defaultListenAddr = "0.0.0.0:8080"
	defaultDataDir    = "./data"
)

// FromEnv builds Settings from OMIX_* environment variables, falling back to
// defaults. Call godotenv.Load first if a .env file should be honored.
func FromEnv() Settings {
	s := Settings{
		ListenAddr: envOr("OMIX_LISTEN", defaultListenAddr),
		DataDir:    envOr("OMIX_DATA", defaultDataDir),
		UniProtURL: os.Getenv("OMIX_UNIPROT_URL"), // empty means the public endpoint
		EnrichrURL: os.Getenv("OMIX_ENRICHR_URL"),
		LogLevel:   zapcore.InfoLevel,
	}

	if raw := os.Getenv("OMIX_LOG_LEVEL"); raw != "" {
		if lvl, err := zapcore.ParseLevel(raw); err == nil {
			s.LogLevel = lvl
		}
	}

	return s
}

// CachePath is the identifier cache location under the data dir.
func (s Settings) CachePath() string {
	return path.Join(s.DataDir, "db", "identifier_cache.db")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
