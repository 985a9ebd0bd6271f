// Package config loads service settings from the environment.
//
// Variables use the COURTGRID_ prefix, e.g. COURTGRID_HTTP_ADDR. A .env file in the
// working directory is read first when present; real environment variables win.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix
const Prefix = "COURTGRID"

// Config holds all service settings
type Config struct {
	// Serving
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	BaseURL  string `envconfig:"BASE_URL" default:"http://localhost:8080"`
	Facility string `envconfig:"FACILITY" default:"jingu"`

	// Upstream reservation page
	SourceURL      string        `envconfig:"SOURCE_URL" default:"http://www.meijijingugaien.jp/sports/futsal/reserve.php"`
	TennisSelector string        `envconfig:"TENNIS_SELECTOR" default:"#anc01"`
	SharedSelector string        `envconfig:"SHARED_SELECTOR" default:"#anc02"`
	ReservedClass  string        `envconfig:"RESERVED_CLASS" default:"reserved"`
	UserAgent      string        `envconfig:"USER_AGENT"`
	FetchTimeout   time.Duration `envconfig:"FETCH_TIMEOUT" default:"30s"`

	// Week requests
	Days        int    `envconfig:"DAYS" default:"7"`
	MaxInFlight int    `envconfig:"MAX_IN_FLIGHT" default:"7"`
	Timezone    string `envconfig:"TIMEZONE" default:"Asia/Tokyo"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// Bot
	TelegramToken string `envconfig:"TELEGRAM_TOKEN"`
	BotPrefix     string `envconfig:"BOT_PREFIX" default:"/"`
}

// Load reads .env (if present) and the process environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	var c Config
	if err := envconfig.Process(Prefix, &c); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

// Validate checks ranges and formats
func (c *Config) Validate() error {
	if c.Days < 1 || c.Days > 31 {
		return fmt.Errorf("DAYS must be between 1 and 31, got %d", c.Days)
	}
	if c.MaxInFlight < 1 {
		return fmt.Errorf("MAX_IN_FLIGHT must be positive, got %d", c.MaxInFlight)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	if c.Facility == "" {
		return fmt.Errorf("FACILITY is required")
	}
	for name, raw := range map[string]string{"BASE_URL": c.BaseURL, "SOURCE_URL": c.SourceURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location returns the facility timezone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Today returns midnight of the current date in the facility timezone
func (c *Config) Today() time.Time {
	loc, err := c.Location()
	if err != nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}
