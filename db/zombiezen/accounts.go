package zombiezen

import (
	"context"
	"fmt"

	"github.com/bhamail/bhamail/db"
	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// CreateAccount inserts the primary mail account row for a user.
// Written separately from the user row: a crash between the two writes
// is a known, accepted inconsistency window.
func (d *Db) CreateAccount(account db.Account) (*db.Account, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	if account.ID == "" {
		account.ID = uuid.NewString()
	}

	var created *db.Account
	err = sqlitex.Execute(conn,
		`INSERT INTO accounts (id, user_id, email, local_part, domain)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, user_id, email, local_part, domain, created`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				createdAt, err := db.TimeParse(stmt.GetText("created"))
				if err != nil {
					return fmt.Errorf("error parsing created time: %w", err)
				}
				created = &db.Account{
					ID:        stmt.GetText("id"),
					UserID:    stmt.GetText("user_id"),
					Email:     stmt.GetText("email"),
					LocalPart: stmt.GetText("local_part"),
					Domain:    stmt.GetText("domain"),
					Created:   createdAt,
				}
				return nil
			},
			Args: []interface{}{
				account.ID,
				account.UserID,
				account.Email,
				account.LocalPart,
				account.Domain,
			},
		})

	if isUniqueConstraint(err) {
		return nil, db.ErrConstraintUnique
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return created, nil
}
