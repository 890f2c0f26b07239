// Package config handles phash configuration
package config

import (
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
)

type Config struct {
	Algorithm   string
	Resolution  int
	Filters     []string
	EngineFile  string  // exported engine config, overrides Algorithm/Resolution/Filters
	MaxDistance float64 // normalized Hamming distance, 0..1
	Workers     int
	Extensions  []string
	LogLevel    string
}

func Load() *Config {
	return &Config{
		Algorithm:   getEnv("PHASH_ALGORITHM", "average"),
		Resolution:  getEnvInt("PHASH_RESOLUTION", 64),
		Filters:     getEnvList("PHASH_FILTERS", nil),
		EngineFile:  getEnv("PHASH_ENGINE_FILE", ""),
		MaxDistance: getEnvFloat("PHASH_MAX_DISTANCE", 0.15),
		Workers:     getEnvInt("PHASH_WORKERS", runtime.NumCPU()),
		Extensions:  getEnvList("PHASH_EXTENSIONS", []string{"jpg", "jpeg", "png", "gif", "bmp", "tiff", "webp"}),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if t := strings.TrimSpace(p); t != "" {
				result = append(result, t)
			}
		}
		return result
	}
	return def
}
