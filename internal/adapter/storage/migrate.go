package storage

import (
	"context"
	_ "embed"
	"fmt"

	logx "github.com/palazzem/cash-register/internal/pkg/logger"
)

//go:embed schema.sql
var schema string

// Migrate creates the tables when they do not exist yet.
func Migrate(ctx context.Context, db DB) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	logx.Info().Msg("database schema is up to date")
	return nil
}
