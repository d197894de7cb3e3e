package submission

import "context"

type Repository interface {
	// Create inserts s as pending with an empty review comment and sets s.ID.
	Create(ctx context.Context, s *Submission) error

	GetByID(ctx context.Context, id uint64) (*Submission, error)

	// GetLatestByName returns the newest submission for a requester name.
	GetLatestByName(ctx context.Context, name string) (*Submission, error)

	// List returns every submission, newest first.
	List(ctx context.Context) ([]Submission, error)

	// UpdateStatus replaces status and comment together. Zero affected rows
	// means the id does not exist; no row is created.
	UpdateStatus(ctx context.Context, id uint64, status Status, comment string) (int64, error)

	Delete(ctx context.Context, id uint64) (int64, error)
}
