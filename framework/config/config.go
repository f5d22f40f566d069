// Package config loads application settings from .env files and the process
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the typed configuration of a go-sprinkles application.
type Config struct {
	App     AppConfig
	Runtime RuntimeConfig
	Log     LogConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	Port  string

	// ReadTimeout bounds reading a request's headers, in seconds.
	ReadTimeout int
}

// RuntimeConfig controls page bootstrap.
type RuntimeConfig struct {
	// Marker is the attribute naming an element's controller.
	Marker string
	// Page is an HTML file to boot; empty means the application's built-in page.
	Page string
}

type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // console | json
}

// Load reads the named .env files (".env" when none are named) into the
// process environment and builds a Config from it. Missing files are skipped;
// variables already set in the environment are not overwritten.
func Load(envFiles ...string) *Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		_ = godotenv.Load(file)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment alone.
func FromEnv() *Config {
	return &Config{
		App: AppConfig{
			Name:  Get("APP_NAME", "go-sprinkles"),
			Env:   Get("APP_ENV", "local"),
			Debug: GetBool("APP_DEBUG", true),
			Port:  Get("APP_PORT", "8000"),

			ReadTimeout: GetInt("APP_READ_TIMEOUT", 10),
		},
		Runtime: RuntimeConfig{
			Marker: Get("SPRINKLES_MARKER", "data-controller"),
			Page:   Get("SPRINKLES_PAGE", ""),
		},
		Log: LogConfig{
			Level:  Get("LOG_LEVEL", "info"),
			Format: Get("LOG_FORMAT", "console"),
		},
	}
}

// Validate reports settings the application cannot start with.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.App.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("config: APP_PORT %q is not a valid port", c.App.Port)
	}
	if c.App.ReadTimeout < 1 {
		return fmt.Errorf("config: APP_READ_TIMEOUT %d must be at least one second", c.App.ReadTimeout)
	}
	if strings.TrimSpace(c.Runtime.Marker) == "" {
		return fmt.Errorf("config: SPRINKLES_MARKER is blank")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: LOG_FORMAT %q is not one of console, json", c.Log.Format)
	}
	return nil
}

// Get returns an env value, falling back to defaultVal when unset or empty.
func Get(key, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultVal
}

// GetInt returns an int env value. Unparsable values fall back to defaultVal.
func GetInt(key string, defaultVal int) int {
	n, err := strconv.Atoi(Get(key, ""))
	if err != nil {
		return defaultVal
	}
	return n
}

// GetBool returns a bool env value. Unparsable values fall back to defaultVal.
func GetBool(key string, defaultVal bool) bool {
	b, err := strconv.ParseBool(Get(key, ""))
	if err != nil {
		return defaultVal
	}
	return b
}
