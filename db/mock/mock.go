package mock

import (
	"github.com/bhamail/bhamail/db"
)

// Compile-time check to ensure Db implements the DbApp interface
var _ db.DbApp = (*Db)(nil)

// Db implements db.DbApp for testing purposes.
// Use function fields to override behavior in specific tests; unset
// fields fall back to a permissive default.
type Db struct {
	GetUserByEmailFunc       func(email string) (*db.User, error)
	GetUserByIdFunc          func(id string) (*db.User, error)
	CreateUserFunc           func(user db.User) (*db.User, error)
	CreateAccountFunc        func(account db.Account) (*db.Account, error)
	UpdateLastLoginFunc      func(userID string) error
	UpdatePasswordFunc       func(userID, newHash string) error
	UpdateTotpSecretFunc     func(userID, secret string) error
	EnableTotpFunc           func(userID string) error
	DisableTotpFunc          func(userID string) error
	CreateSessionFunc        func(session db.Session) (*db.Session, error)
	GetSessionsByUserFunc    func(userID string) ([]*db.Session, error)
	DeleteSessionFunc        func(id string) error
	DeleteSessionsByUserFunc func(userID string) error

	InsertJobFunc     func(job db.Job) error
	ClaimFunc         func(limit int) ([]*db.Job, error)
	MarkCompletedFunc func(jobID int64) error
	MarkFailedFunc    func(jobID int64, errMsg string) error
}

func (m *Db) GetUserByEmail(email string) (*db.User, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(email)
	}
	return nil, nil // Default: not found
}

func (m *Db) GetUserById(id string) (*db.User, error) {
	if m.GetUserByIdFunc != nil {
		return m.GetUserByIdFunc(id)
	}
	return nil, nil // Default: not found
}

func (m *Db) CreateUser(user db.User) (*db.User, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(user)
	}
	user.ID = "mock-user-id"
	return &user, nil
}

func (m *Db) CreateAccount(account db.Account) (*db.Account, error) {
	if m.CreateAccountFunc != nil {
		return m.CreateAccountFunc(account)
	}
	account.ID = "mock-account-id"
	return &account, nil
}

func (m *Db) UpdateLastLogin(userID string) error {
	if m.UpdateLastLoginFunc != nil {
		return m.UpdateLastLoginFunc(userID)
	}
	return nil
}

func (m *Db) UpdatePassword(userID, newHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(userID, newHash)
	}
	return nil
}

func (m *Db) UpdateTotpSecret(userID, secret string) error {
	if m.UpdateTotpSecretFunc != nil {
		return m.UpdateTotpSecretFunc(userID, secret)
	}
	return nil
}

func (m *Db) EnableTotp(userID string) error {
	if m.EnableTotpFunc != nil {
		return m.EnableTotpFunc(userID)
	}
	return nil
}

func (m *Db) DisableTotp(userID string) error {
	if m.DisableTotpFunc != nil {
		return m.DisableTotpFunc(userID)
	}
	return nil
}

func (m *Db) CreateSession(session db.Session) (*db.Session, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(session)
	}
	session.ID = "mock-session-id"
	return &session, nil
}

func (m *Db) GetSessionsByUser(userID string) ([]*db.Session, error) {
	if m.GetSessionsByUserFunc != nil {
		return m.GetSessionsByUserFunc(userID)
	}
	return nil, nil
}

func (m *Db) DeleteSession(id string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(id)
	}
	return nil
}

func (m *Db) DeleteSessionsByUser(userID string) error {
	if m.DeleteSessionsByUserFunc != nil {
		return m.DeleteSessionsByUserFunc(userID)
	}
	return nil
}

func (m *Db) InsertJob(job db.Job) error {
	if m.InsertJobFunc != nil {
		return m.InsertJobFunc(job)
	}
	return nil
}

func (m *Db) Claim(limit int) ([]*db.Job, error) {
	if m.ClaimFunc != nil {
		return m.ClaimFunc(limit)
	}
	return nil, nil
}

func (m *Db) MarkCompleted(jobID int64) error {
	if m.MarkCompletedFunc != nil {
		return m.MarkCompletedFunc(jobID)
	}
	return nil
}

func (m *Db) MarkFailed(jobID int64, errMsg string) error {
	if m.MarkFailedFunc != nil {
		return m.MarkFailedFunc(jobID, errMsg)
	}
	return nil
}
