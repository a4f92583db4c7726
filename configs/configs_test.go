package configs

import (
	"testing"
)

func TestParseConfig(t *testing.T) {
	t.Setenv("SECURITY_DATABASE_DSN", "test-dsn")
	t.Setenv("SECURITY_DATABASE_TYPE", "psql")
	t.Setenv("SECURITY_MAIL_BASE_URL", "https://example.com")
	t.Setenv("SECURITY_MAIL_MAX_SEND_RATE", "5")

	cfg, err := Parse()

	if err != nil {
		t.Fatal(err)
	}

	if cfg.DatabaseDSN != "test-dsn" {
		t.Errorf(`expected "DatabaseDSN" to equal "test-dsn", got "%s"`, cfg.DatabaseDSN)
	}

	if cfg.DatabaseType != "psql" {
		t.Errorf(`expected "DatabaseType" to equal "psql", got "%s"`, cfg.DatabaseType)
	}

	if cfg.MailBaseURL != "https://example.com" {
		t.Errorf(`expected "MailBaseURL" to equal "https://example.com", got "%s"`, cfg.MailBaseURL)
	}

	if cfg.MailMaxSendRate != 5 {
		t.Errorf(`expected "MailMaxSendRate" to equal 5, got %d`, cfg.MailMaxSendRate)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := Parse()

	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3000 {
		t.Errorf(`expected "Port" to equal 3000, got %d`, cfg.Port)
	}

	if cfg.DatabaseType != "sqlite" {
		t.Errorf(`expected "DatabaseType" to equal "sqlite", got "%s"`, cfg.DatabaseType)
	}
}
