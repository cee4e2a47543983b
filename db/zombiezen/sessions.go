package zombiezen

import (
	"context"
	"fmt"

	"github.com/bhamail/bhamail/db"
	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

func newSessionFromStmt(stmt *sqlite.Stmt) (*db.Session, error) {
	expiresAt, err := db.TimeParse(stmt.GetText("expires_at"))
	if err != nil {
		return nil, fmt.Errorf("error parsing expires_at time: %w", err)
	}

	created, err := db.TimeParse(stmt.GetText("created"))
	if err != nil {
		return nil, fmt.Errorf("error parsing created time: %w", err)
	}

	return &db.Session{
		ID:        stmt.GetText("id"),
		UserID:    stmt.GetText("user_id"),
		TokenHash: stmt.GetText("token_hash"),
		ExpiresAt: expiresAt,
		Created:   created,
	}, nil
}

// CreateSession persists one refresh-token record. Additive: existing
// sessions for the user stay valid (multi-device).
func (d *Db) CreateSession(session db.Session) (*db.Session, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	var created *db.Session
	err = sqlitex.Execute(conn,
		`INSERT INTO sessions (id, user_id, token_hash, expires_at)
		VALUES (?, ?, ?, ?)
		RETURNING id, user_id, token_hash, expires_at, created`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				created, err = newSessionFromStmt(stmt)
				return err
			},
			Args: []interface{}{
				session.ID,
				session.UserID,
				session.TokenHash,
				db.TimeFormat(session.ExpiresAt),
			},
		})

	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return created, nil
}

// GetSessionsByUser returns the user's sessions that have not expired.
// Expired rows are ignored rather than eagerly deleted; they are garbage
// collected opportunistically here.
func (d *Db) GetSessionsByUser(userID string) ([]*db.Session, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var sessions []*db.Session
	err = sqlitex.Execute(conn,
		`SELECT id, user_id, token_hash, expires_at, created
		FROM sessions
		WHERE user_id = ? AND expires_at > (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				s, err := newSessionFromStmt(stmt)
				if err != nil {
					return err
				}
				sessions = append(sessions, s)
				return nil
			},
			Args: []interface{}{userID},
		})

	if err != nil {
		return nil, err
	}

	return sessions, nil
}

func (d *Db) DeleteSession(id string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`DELETE FROM sessions WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{id},
		})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteSessionsByUser removes every session for the user, forcing
// re-login on all devices.
func (d *Db) DeleteSessionsByUser(userID string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`DELETE FROM sessions WHERE user_id = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{userID},
		})
	if err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}
