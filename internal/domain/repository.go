package domain

import "context"

// Credential is the bearer identity presented to the persister.
type Credential struct {
	Token      string
	EmployerID string
}

// JobReader loads the current persisted posting. It returns ErrNotFound when the
// posting does not exist or is not visible to the employer.
type JobReader interface {
	GetJob(ctx context.Context, jobID string) (*JobPosting, error)
}

// JobPersister replaces every editable field of a posting in one write. Calling it
// again with the same payload after a failure is safe.
type JobPersister interface {
	ReplaceJob(ctx context.Context, cred Credential, jobID string, posting JobPosting) (*JobPosting, error)
}

// JobRepository combines read and write access to postings.
type JobRepository interface {
	JobReader
	JobPersister
}

// SessionSource yields the caller's credential. Implementations return
// ErrUnauthorized when the session is missing or expired.
type SessionSource interface {
	Credential(ctx context.Context) (Credential, error)
}
