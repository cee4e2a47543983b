package db

import "time"

// User represents a user from the database.
// Timestamps use RFC3339 format in UTC timezone.
// Example: "2024-03-07T15:04:05Z"
type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	// Password is the bcrypt hash. Never the plaintext.
	Password string
	Role     string
	Phone    string
	Avatar   string
	Timezone string
	Language string

	// TotpSecret is the base32 shared secret. It may be set while
	// TotpEnabled is still false (enrollment pending verification).
	// TotpEnabled true implies TotpSecret is non-empty.
	TotpSecret  string
	TotpEnabled bool

	QuotaBytes int64
	UsedBytes  int64

	Active    bool
	Created   time.Time
	LastLogin time.Time
}

// Account is the primary mail account record created alongside a user.
// LocalPart and Domain are the two halves of the signup email split at "@".
type Account struct {
	ID        string
	UserID    string
	Email     string
	LocalPart string
	Domain    string
	Created   time.Time
}

// Session is one refresh-token record. TokenHash is the SHA-256 hex digest
// of the refresh token, never the token itself. A session is live only
// while ExpiresAt is in the future; multiple sessions per user are allowed.
type Session struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	Created   time.Time
}
