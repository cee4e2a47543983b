package queue

import (
	"time"
)

// Job type constants
const (
	JobTypeWelcomeEmail = "job_type_welcome_email"
)

// PayloadWelcomeEmail is the unique part of a welcome email job. The
// cooldown bucket makes repeated insertions for the same user within a
// cooldown window hit the queue's UNIQUE(job_type, payload) constraint.
type PayloadWelcomeEmail struct {
	UserID         string `json:"user_id"`
	CooldownBucket int    `json:"cooldown_bucket"`
}

// PayloadWelcomeEmailExtra carries delivery details that must not
// participate in deduplication.
type PayloadWelcomeEmailExtra struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
}

// CoolDownBucket returns the number of the interval in which time t falls,
// with intervals starting at the Unix epoch.
func CoolDownBucket(cooldown time.Duration, t time.Time) int {
	if cooldown <= 0 {
		return 0
	}
	return int(t.Unix() / int64(cooldown.Seconds()))
}
