package db

import (
	"encoding/json"
	"time"
)

// DbAuth is the credential store contract consumed by the auth handlers.
// Implementations return (nil, nil) for lookups with no matching row;
// errors are reserved for storage failures.
type DbAuth interface {
	GetUserByEmail(email string) (*User, error)
	GetUserById(id string) (*User, error)
	CreateUser(user User) (*User, error)
	CreateAccount(account Account) (*Account, error)
	UpdateLastLogin(userID string) error
	UpdatePassword(userID string, newHash string) error
	UpdateTotpSecret(userID string, secret string) error
	EnableTotp(userID string) error
	DisableTotp(userID string) error

	CreateSession(session Session) (*Session, error)
	// GetSessionsByUser returns only sessions whose expiry is in the future.
	GetSessionsByUser(userID string) ([]*Session, error)
	DeleteSession(id string) error
	DeleteSessionsByUser(userID string) error
}

// DbQueue is the job queue contract.
type DbQueue interface {
	InsertJob(job Job) error
	Claim(limit int) ([]*Job, error)
	MarkCompleted(jobID int64) error
	MarkFailed(jobID int64, errMsg string) error
}

// DbApp combines the DB roles the application needs. The concrete
// implementation (*zombiezen.Db) must satisfy it.
type DbApp interface {
	DbAuth
	DbQueue
}

// Job represents a job in the processing queue
type Job struct {
	ID           int64           `json:"id"`
	JobType      string          `json:"job_type"`
	Payload      json.RawMessage `json:"payload"`       // Unique payload part
	PayloadExtra json.RawMessage `json:"payload_extra"` // Non-unique payload part
	Status       string          `json:"status"`
	Attempts     int             `json:"attempts"`
	MaxAttempts  int             `json:"max_attempts"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	ScheduledFor time.Time       `json:"scheduled_for"`
	LockedAt     time.Time       `json:"locked_at,omitempty"`
	CompletedAt  time.Time       `json:"completed_at,omitempty"`
	LastError    string          `json:"last_error,omitempty"`
}

// Job statuses
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)
