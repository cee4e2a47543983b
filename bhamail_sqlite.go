package bhamail

// Helpers to create SQLite connection pools for the application. If your
// code interacts directly with the database alongside this package, use a
// single shared pool to prevent SQLITE_BUSY errors: create the pool here
// and pass it both to WithZombiezenPool and to your own access layer.

import (
	"fmt"
	"runtime"

	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/bhamail/bhamail/core"
	"github.com/bhamail/bhamail/db/zombiezen"
)

// WithZombiezenPool configures the App to use the Zombiezen SQLite
// implementation with an existing pool. The caller owns the pool's
// lifecycle.
func WithZombiezenPool(pool *sqlitex.Pool) core.Option {
	return func(a *core.App) {
		dbInstance, err := zombiezen.New(pool)
		if err != nil {
			panic(fmt.Sprintf("failed to initialize zombiezen DB with existing pool: %v", err))
		}
		a.SetDb(dbInstance)
	}
}

// NewZombiezenPool creates a new Zombiezen SQLite connection pool with
// reasonable defaults (WAL mode enabled via the driver's default flags).
func NewZombiezenPool(dbPath string) (*sqlitex.Pool, error) {
	// Default OpenFlags are ReadWrite | Create | WAL | URI.
	pool, err := sqlitex.NewPool(fmt.Sprintf("file:%s", dbPath), sqlitex.PoolOptions{
		PoolSize: runtime.NumCPU(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create zombiezen pool at %s: %w", dbPath, err)
	}
	return pool, nil
}
