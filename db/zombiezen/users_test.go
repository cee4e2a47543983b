package zombiezen

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/bhamail/bhamail/db"
	"github.com/bhamail/bhamail/migrations"
	"zombiezen.com/go/sqlite/sqlitex"
)

// newTestUserDB creates a new in-memory SQLite database and applies the users schema.
func newTestUserDB(t *testing.T) *Db {
	t.Helper()

	pool, err := sqlitex.NewPool("file::memory:", sqlitex.PoolOptions{
		PoolSize: 1,
	})
	if err != nil {
		t.Fatalf("failed to create db pool: %v", err)
	}

	t.Cleanup(func() {
		if err := pool.Close(); err != nil {
			t.Errorf("failed to close db pool: %v", err)
		}
	})

	conn, err := pool.Take(context.Background())
	if err != nil {
		t.Fatalf("failed to get db connection: %v", err)
	}
	defer pool.Put(conn)

	schemaFS := migrations.Schema()
	sqlBytes, err := fs.ReadFile(schemaFS, "app/users.sql")
	if err != nil {
		t.Fatalf("Failed to read app/users.sql: %v", err)
	}

	if err := sqlitex.ExecuteScript(conn, string(sqlBytes), nil); err != nil {
		t.Fatalf("Failed to execute app/users.sql: %v", err)
	}

	testDB, err := New(pool)
	if err != nil {
		t.Fatalf("failed to create db: %v", err)
	}
	return testDB
}

// TestCreateUserDefaults creates a user the way signup does, with only
// the fields the request carries, and checks the schema defaults on the
// returned row. A fresh user must come back active, or every signup
// would be followed by a failed login.
func TestCreateUserDefaults(t *testing.T) {
	testDB := newTestUserDB(t)

	created, err := testDB.CreateUser(db.User{
		Email:     "new.user@example.com",
		Password:  "$2a$12$notarealhashbutlongenough",
		FirstName: "New",
		LastName:  "User",
	})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if created.ID == "" {
		t.Fatal("expected user to have a generated ID")
	}
	if !created.Active {
		t.Error("expected freshly created user to be active")
	}
	if created.Role != "user" {
		t.Errorf("expected role 'user', got %q", created.Role)
	}
	if created.Timezone != "UTC" {
		t.Errorf("expected timezone 'UTC', got %q", created.Timezone)
	}
	if created.Language != "en" {
		t.Errorf("expected language 'en', got %q", created.Language)
	}
	if created.TotpEnabled || created.TotpSecret != "" {
		t.Error("expected no second factor on a fresh user")
	}
	if created.QuotaBytes == 0 {
		t.Error("expected default quota to be set")
	}
	if created.Created.IsZero() {
		t.Error("expected created timestamp to be set")
	}
	if !created.LastLogin.IsZero() {
		t.Error("expected no last login on a fresh user")
	}

	// The round trip through a lookup must agree.
	fetched, err := testDB.GetUserByEmail("new.user@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected to find the created user")
	}
	if !fetched.Active {
		t.Error("expected fetched user to be active")
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	testDB := newTestUserDB(t)

	user := db.User{
		Email:     "dup@example.com",
		Password:  "hash",
		FirstName: "First",
		LastName:  "User",
	}
	if _, err := testDB.CreateUser(user); err != nil {
		t.Fatalf("first CreateUser failed: %v", err)
	}

	if _, err := testDB.CreateUser(user); !errors.Is(err, db.ErrConstraintUnique) {
		t.Errorf("expected db.ErrConstraintUnique, got %v", err)
	}
}

func TestGetUserByEmailNotFound(t *testing.T) {
	testDB := newTestUserDB(t)

	user, err := testDB.GetUserByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user for unknown email, got %+v", user)
	}
}

func TestUserUpdates(t *testing.T) {
	testDB := newTestUserDB(t)

	created, err := testDB.CreateUser(db.User{
		Email:     "upd@example.com",
		Password:  "oldhash",
		FirstName: "Up",
		LastName:  "Date",
	})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	t.Run("LastLogin", func(t *testing.T) {
		if err := testDB.UpdateLastLogin(created.ID); err != nil {
			t.Fatalf("UpdateLastLogin failed: %v", err)
		}
		user, err := testDB.GetUserById(created.ID)
		if err != nil {
			t.Fatalf("GetUserById failed: %v", err)
		}
		if user.LastLogin.IsZero() {
			t.Error("expected last login to be set")
		}
	})

	t.Run("Password", func(t *testing.T) {
		if err := testDB.UpdatePassword(created.ID, "newhash"); err != nil {
			t.Fatalf("UpdatePassword failed: %v", err)
		}
		user, err := testDB.GetUserById(created.ID)
		if err != nil {
			t.Fatalf("GetUserById failed: %v", err)
		}
		if user.Password != "newhash" {
			t.Errorf("expected updated password hash, got %q", user.Password)
		}
	})

	t.Run("TotpEnableDisable", func(t *testing.T) {
		if err := testDB.UpdateTotpSecret(created.ID, "SECRETBASE32"); err != nil {
			t.Fatalf("UpdateTotpSecret failed: %v", err)
		}
		user, err := testDB.GetUserById(created.ID)
		if err != nil {
			t.Fatalf("GetUserById failed: %v", err)
		}
		if user.TotpSecret != "SECRETBASE32" {
			t.Errorf("expected stored secret, got %q", user.TotpSecret)
		}
		if user.TotpEnabled {
			t.Error("storing a secret must not enable the second factor")
		}

		if err := testDB.EnableTotp(created.ID); err != nil {
			t.Fatalf("EnableTotp failed: %v", err)
		}
		user, _ = testDB.GetUserById(created.ID)
		if !user.TotpEnabled {
			t.Error("expected second factor enabled")
		}

		if err := testDB.DisableTotp(created.ID); err != nil {
			t.Fatalf("DisableTotp failed: %v", err)
		}
		user, _ = testDB.GetUserById(created.ID)
		if user.TotpEnabled || user.TotpSecret != "" {
			t.Error("expected second factor disabled and secret cleared")
		}
	})
}
