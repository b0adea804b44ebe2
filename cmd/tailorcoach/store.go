package main

import (
	"context"
	"fmt"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/db"
)

// openStore picks the session store: PostgreSQL when a URL is given, then SQLite, then memory
func openStore(ctx context.Context, databaseURL, sqlitePath string) (db.Store, error) {
	switch {
	case databaseURL != "":
		database, err := db.Connect(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return database, nil
	case sqlitePath != "":
		database, err := db.OpenSQLite(ctx, sqlitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return database, nil
	default:
		return db.NewMemoryStore(), nil
	}
}
