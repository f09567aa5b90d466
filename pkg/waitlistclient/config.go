package waitlistclient

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	APIURL             string        `env:"WAITLIST_API_URL"             envDefault:"http://localhost:8080"`
	ConfirmationWindow time.Duration `env:"WAITLIST_CONFIRMATION_WINDOW" envDefault:"3s"`
}

func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid WAITLIST_API_URL %q: %w", c.APIURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid WAITLIST_API_URL %q: want http(s)://host[:port]", c.APIURL)
	}
	if c.ConfirmationWindow <= 0 {
		return fmt.Errorf("WAITLIST_CONFIRMATION_WINDOW must be positive, got %s", c.ConfirmationWindow)
	}
	return nil
}
