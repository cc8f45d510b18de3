// Package migrate applies the relational schema used by the postgres adapters.
package migrate

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

//go:embed schema.sql
var tables string

// Apply creates missing tables in schemaName, or in the connection's default
// schema when schemaName is empty. Every statement is idempotent.
func Apply(ctx context.Context, db *sqlx.DB, schemaName string) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer tx.Rollback()

	if schemaName != "" {
		ident := pq.QuoteIdentifier(schemaName)
		if _, err := tx.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+ident); err != nil {
			return fmt.Errorf("failed to create schema %s: %w", schemaName, err)
		}
		if _, err := tx.ExecContext(ctx, "SET LOCAL search_path TO "+ident); err != nil {
			return fmt.Errorf("failed to select schema %s: %w", schemaName, err)
		}
	}

	if _, err := tx.ExecContext(ctx, tables); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}
	return nil
}
