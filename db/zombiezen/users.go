package zombiezen

import (
	"context"
	"fmt"

	"github.com/bhamail/bhamail/db"
	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const userColumns = `id, email, password, first_name, last_name, role, phone, avatar,
	timezone, language, totp_secret, totp_enabled, quota_bytes, used_bytes,
	active, created, last_login`

// newUserFromStmt creates a User struct from a SQLite statement
func newUserFromStmt(stmt *sqlite.Stmt) (*db.User, error) {
	created, err := db.TimeParse(stmt.GetText("created"))
	if err != nil {
		return nil, fmt.Errorf("error parsing created time: %w", err)
	}

	lastLogin, err := db.TimeParse(stmt.GetText("last_login"))
	if err != nil {
		return nil, fmt.Errorf("error parsing last_login time: %w", err)
	}

	return &db.User{
		ID:          stmt.GetText("id"),
		Email:       stmt.GetText("email"),
		Password:    stmt.GetText("password"),
		FirstName:   stmt.GetText("first_name"),
		LastName:    stmt.GetText("last_name"),
		Role:        stmt.GetText("role"),
		Phone:       stmt.GetText("phone"),
		Avatar:      stmt.GetText("avatar"),
		Timezone:    stmt.GetText("timezone"),
		Language:    stmt.GetText("language"),
		TotpSecret:  stmt.GetText("totp_secret"),
		TotpEnabled: stmt.GetInt64("totp_enabled") != 0,
		QuotaBytes:  stmt.GetInt64("quota_bytes"),
		UsedBytes:   stmt.GetInt64("used_bytes"),
		Active:      stmt.GetInt64("active") != 0,
		Created:     created,
		LastLogin:   lastLogin,
	}, nil
}

// GetUserByEmail retrieves a user by email address. The email column is
// COLLATE NOCASE so lookups are case-insensitive.
// A nil user with nil error indicates no matching record was found.
func (d *Db) GetUserByEmail(email string) (*db.User, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var user *db.User
	err = sqlitex.Execute(conn,
		`SELECT `+userColumns+` FROM users WHERE email = ? LIMIT 1`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				user, err = newUserFromStmt(stmt)
				return err
			},
			Args: []interface{}{email},
		})

	if err != nil {
		return nil, err
	}

	return user, nil
}

func (d *Db) GetUserById(id string) (*db.User, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var user *db.User
	err = sqlitex.Execute(conn,
		`SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				user, err = newUserFromStmt(stmt)
				return err
			},
			Args: []interface{}{id},
		})

	if err != nil {
		return nil, err
	}

	return user, nil
}

// CreateUser inserts a new user row. A duplicate email surfaces as
// db.ErrConstraintUnique.
func (d *Db) CreateUser(user db.User) (*db.User, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = "user"
	}

	// The active, totp and quota columns take their schema defaults:
	// new users start active, without a second factor, on the default
	// quota.
	var createdUser *db.User
	err = sqlitex.Execute(conn,
		`INSERT INTO users (id, email, password, first_name, last_name, role, phone,
			avatar, timezone, language)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+userColumns,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				createdUser, err = newUserFromStmt(stmt)
				return err
			},
			Args: []interface{}{
				user.ID,
				user.Email,
				user.Password,
				user.FirstName,
				user.LastName,
				user.Role,
				user.Phone,
				user.Avatar,
				nonEmpty(user.Timezone, "UTC"),
				nonEmpty(user.Language, "en"),
			},
		})

	if isUniqueConstraint(err) {
		return nil, db.ErrConstraintUnique
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return createdUser, nil
}

func (d *Db) UpdateLastLogin(userID string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE users
		SET last_login = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{userID},
		})
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

func (d *Db) UpdatePassword(userID string, newHash string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE users SET password = ? WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{newHash, userID},
		})
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// UpdateTotpSecret stores a pending TOTP secret without enabling 2FA.
// Enablement is a separate step after the user proves code possession.
func (d *Db) UpdateTotpSecret(userID string, secret string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE users SET totp_secret = ? WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{secret, userID},
		})
	if err != nil {
		return fmt.Errorf("failed to update totp secret: %w", err)
	}
	return nil
}

func (d *Db) EnableTotp(userID string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE users SET totp_enabled = 1 WHERE id = ? AND totp_secret != ''`,
		&sqlitex.ExecOptions{
			Args: []interface{}{userID},
		})
	if err != nil {
		return fmt.Errorf("failed to enable totp: %w", err)
	}
	return nil
}

// DisableTotp clears both the enabled flag and the secret. Re-enabling
// requires a fresh enrollment.
func (d *Db) DisableTotp(userID string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE users SET totp_enabled = 0, totp_secret = '' WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{userID},
		})
	if err != nil {
		return fmt.Errorf("failed to disable totp: %w", err)
	}
	return nil
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
