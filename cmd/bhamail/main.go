package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/bhamail/bhamail"
	"github.com/bhamail/bhamail/db/zombiezen"
	"github.com/bhamail/bhamail/migrations"
)

func main() {
	configPath := flag.String("config", "bhamail.toml", "path to the TOML configuration file")
	dbPath := flag.String("db", "bhamail.db", "path to the SQLite database file")
	flag.Parse()

	pool, err := bhamail.NewZombiezenPool(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "path", *dbPath, "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := pool.Close(); err != nil {
			slog.Error("failed to close database pool", "err", err)
		}
	}()

	if err := applyMigrations(pool); err != nil {
		slog.Error("failed to apply migrations", "err", err)
		os.Exit(1)
	}

	_, srv, err := bhamail.New(*configPath,
		bhamail.WithZombiezenPool(pool),
		bhamail.WithPhusLogger(nil),
	)
	if err != nil {
		slog.Error("failed to initialize application", "err", err)
		os.Exit(1)
	}

	srv.Run()
}

func applyMigrations(pool *sqlitex.Pool) error {
	ctx := context.Background()
	conn, err := pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("failed to take connection: %w", err)
	}
	defer pool.Put(conn)

	return zombiezen.ApplyMigrations(conn, migrations.Schema())
}
