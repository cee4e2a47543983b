package executor

import (
	"context"
	"fmt"

	"github.com/bhamail/bhamail/db"
)

// JobHandler processes a single claimed job.
type JobHandler interface {
	Handle(ctx context.Context, job db.Job) error
}

// DefaultExecutor dispatches jobs to their registered handler by job type.
type DefaultExecutor struct {
	handlers map[string]JobHandler
}

func NewDefaultExecutor(handlers map[string]JobHandler) *DefaultExecutor {
	return &DefaultExecutor{handlers: handlers}
}

func (e *DefaultExecutor) Execute(ctx context.Context, job db.Job) error {
	handler, ok := e.handlers[job.JobType]
	if !ok {
		return fmt.Errorf("no handler registered for job type: %s", job.JobType)
	}
	return handler.Handle(ctx, job)
}
