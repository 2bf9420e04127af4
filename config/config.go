package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HttpPort        uint16        `envconfig:"TESTLEDGER_HTTP_SERVER_PORT" default:"8080" required:"true"`
	SiteAdminEmails []string      `envconfig:"TESTLEDGER_SITE_ADMIN_EMAILS"`
	PatientLinkTTL  time.Duration `envconfig:"TESTLEDGER_PATIENT_LINK_TTL" default:"72h"`
}

func New() *Config {
	return &Config{}
}

func (c *Config) LoadFromEnv() error {
	return envconfig.Process("", c)
}

func NewConfig() (*Config, error) {
	cfg := New()
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsSiteAdmin reports whether the email belongs to the process-wide site admin allowlist
func (c *Config) IsSiteAdmin(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	for _, admin := range c.SiteAdminEmails {
		if strings.EqualFold(strings.TrimSpace(admin), email) {
			return true
		}
	}
	return false
}
