// Package configs handles the application wide configuration.
package configs

import (
	"time"

	"github.com/caarlos0/env/v6"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	// -- Server --

	Host                 string        `env:"SECURITY_HOST"`
	Port                 int           `env:"SECURITY_PORT" envDefault:"3000"`
	LogLevel             string        `env:"SECURITY_LOGLEVEL" envDefault:"info"`
	ServerRequestTimeout time.Duration `env:"SECURITY_SERVER_REQUEST_TIMEOUT" envDefault:"60s"`

	// -- Database --

	DatabaseDSN  string `env:"SECURITY_DATABASE_DSN" envDefault:"security.db"`
	DatabaseType string `env:"SECURITY_DATABASE_TYPE" envDefault:"sqlite"`

	// -- Mail --

	// Base URL used when rendering confirmation and recovery links.
	MailBaseURL string `env:"SECURITY_MAIL_BASE_URL" envDefault:"http://localhost:3000"`
	MailFrom    string `env:"SECURITY_MAIL_FROM" envDefault:"no-reply@localhost"`
	SMTPHost    string `env:"SECURITY_SMTP_HOST"`
	SMTPPort    int    `env:"SECURITY_SMTP_PORT" envDefault:"587"`
	SMTPUser    string `env:"SECURITY_SMTP_USER"`
	SMTPPass    string `env:"SECURITY_SMTP_PASS"`

	// Maximum number of outbound emails per second.
	MailMaxSendRate int `env:"SECURITY_MAIL_MAX_SEND_RATE" envDefault:"10"`

	// -- Idempotency middleware --

	DisableIdempotencyMiddleware      bool   `env:"SECURITY_DISABLE_IDEMPOTENCY_MIDDLEWARE" envDefault:"false"`
	IdempotencyMiddlewareDatabaseType string `env:"SECURITY_IDEMPOTENCY_MIDDLEWARE_DATABASE_TYPE" envDefault:"local"`
	IdempotencyMiddlewareRedisURL     string `env:"SECURITY_IDEMPOTENCY_MIDDLEWARE_REDIS_URL"`
}

// Parse parses environment variables to a valid Config.
func Parse() (*Config, error) {
	cfg := Config{}

	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func ConfigureLogger(logLevel string) {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
