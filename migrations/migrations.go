// Package migrations lists the database schema migrations in order.
package migrations

import (
	gormigrate "github.com/go-gormigrate/gormigrate/v2"
	"github.com/moneta-labs/security-api/migrations/internal/m20250901"
)

func List() []*gormigrate.Migration {
	ms := []*gormigrate.Migration{
		{
			ID:       m20250901.ID,
			Migrate:  m20250901.Migrate,
			Rollback: m20250901.Rollback,
		},
	}
	return ms
}
