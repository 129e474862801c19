package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultDBPath      = "catalog.db"
	defaultImageHost   = "https://img.youtube.com"
	defaultPlaceholder = "https://via.placeholder.com/320x180"
	defaultLogFile     = "catalog.log"
	defaultLogLevel    = "info"
)

// Config holds runtime settings for the CLI app.
type Config struct {
	PagePath        string
	DBPath          string
	ImageHost       string
	PlaceholderURL  string
	ProbeThumbnails bool
	LogFile         string
	LogLevel        string
}

// LoadDotEnv loads variables from path without overriding ones already set.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		PagePath:        os.Getenv("CATALOG_PAGE"),
		DBPath:          os.Getenv("CATALOG_DB_PATH"),
		ImageHost:       os.Getenv("CATALOG_IMAGE_HOST"),
		PlaceholderURL:  os.Getenv("CATALOG_PLACEHOLDER_URL"),
		ProbeThumbnails: true,
		LogLevel:        strings.ToLower(os.Getenv("CATALOG_LOG_LEVEL")),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.ImageHost == "" {
		cfg.ImageHost = defaultImageHost
	}
	if cfg.PlaceholderURL == "" {
		cfg.PlaceholderURL = defaultPlaceholder
	}
	if raw, ok := os.LookupEnv("CATALOG_LOG_FILE"); ok {
		cfg.LogFile = raw
	} else {
		cfg.LogFile = defaultLogFile
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if raw := strings.TrimSpace(os.Getenv("CATALOG_PROBE_THUMBNAILS")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("CATALOG_PROBE_THUMBNAILS must be a boolean: %s", raw)
		}
		cfg.ProbeThumbnails = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.PagePath == "" {
		return errors.New("CATALOG_PAGE is required")
	}
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	if err := validateHTTPURL("ImageHost", c.ImageHost); err != nil {
		return err
	}
	if c.ImageHost[len(c.ImageHost)-1] == '/' {
		return fmt.Errorf("ImageHost must not end with '/': %s", c.ImageHost)
	}
	if err := validateHTTPURL("PlaceholderURL", c.PlaceholderURL); err != nil {
		return err
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LogLevel must be debug, info, warn or error: %s", c.LogLevel)
	}
	return nil
}

func validateHTTPURL(name, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", name)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must use http or https: %s", name, raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s has no host: %s", name, raw)
	}
	return nil
}
