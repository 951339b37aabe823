package config

import (
	"encoding/json"
	"flag"
	"os"
	"strings"
)

type Config struct {
	Port             string `json:"port"`
	Mode             string `json:"mode"` // "debug" | "release"
	TemplatesDir     string `json:"templatesDir"`
	DefaultFramework string `json:"defaultFramework"`

	LogFormat string `json:"logFormat"` // "text" | "json"
	LogLevel  string `json:"logLevel"`  // "debug" | "info" | "warn" | "error"
}

func def() Config {
	return Config{
		Port:             "8080",
		Mode:             "release",
		TemplatesDir:     "templates",
		DefaultFramework: "django",

		LogFormat: "text",
		LogLevel:  "info",
	}
}

func loadJSON(path string) (Config, error) {
	c := def()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return c, err
	}
	return c, nil
}

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

// LoadWithPath reads the JSON file at the given path if it exists,
// then applies ENV and flag overrides in that order.
func LoadWithPath(jsonPath string) Config {
	cfg := def()

	if st, err := os.Stat(jsonPath); err == nil && !st.IsDir() {
		if c2, err := loadJSON(jsonPath); err == nil {
			cfg = c2
		}
	}

	// ENV overrides
	cfg.Port = getenv("INFRANEST_PORT", cfg.Port)
	cfg.Mode = getenv("INFRANEST_MODE", cfg.Mode)
	cfg.TemplatesDir = getenv("INFRANEST_TEMPLATES_DIR", cfg.TemplatesDir)
	cfg.DefaultFramework = getenv("INFRANEST_DEFAULT_FRAMEWORK", cfg.DefaultFramework)
	cfg.LogFormat = getenv("INFRANEST_LOG_FORMAT", cfg.LogFormat)
	cfg.LogLevel = getenv("INFRANEST_LOG_LEVEL", cfg.LogLevel)

	// Flag overrides
	configPath := flag.String("config", jsonPath, "Path to config JSON")
	port := flag.String("port", cfg.Port, "HTTP port")
	mode := flag.String("mode", cfg.Mode, "Server mode (debug/release)")
	templates := flag.String("templates", cfg.TemplatesDir, "Path to starter template directory")
	framework := flag.String("framework", cfg.DefaultFramework, "Default target framework")
	logFormat := flag.String("log-format", cfg.LogFormat, "Log format (text/json)")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level (debug/info/warn/error)")

	flag.Parse()

	// A different config passed via flag wins: reread from there.
	if *configPath != jsonPath {
		return LoadWithPath(*configPath)
	}

	cfg.Port = strings.TrimSpace(*port)
	cfg.Mode = strings.TrimSpace(*mode)
	cfg.TemplatesDir = strings.TrimSpace(*templates)
	cfg.DefaultFramework = strings.TrimSpace(*framework)
	cfg.LogFormat = strings.TrimSpace(*logFormat)
	cfg.LogLevel = strings.TrimSpace(*logLevel)

	return cfg
}
