package submissionmock

import (
	"context"

	domain "equipment-loan/internal/domain/submission"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Lookups without a func report ErrNotFound; mutations are no-ops.
type Repo struct {
	CreateFn          func(ctx context.Context, s *domain.Submission) error
	GetByIDFn         func(ctx context.Context, id uint64) (*domain.Submission, error)
	GetLatestByNameFn func(ctx context.Context, name string) (*domain.Submission, error)
	ListFn            func(ctx context.Context) ([]domain.Submission, error)
	UpdateStatusFn    func(ctx context.Context, id uint64, status domain.Status, comment string) (int64, error)
	DeleteFn          func(ctx context.Context, id uint64) (int64, error)
}

func (m *Repo) Create(ctx context.Context, s *domain.Submission) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Submission, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetLatestByName(ctx context.Context, name string) (*domain.Submission, error) {
	if m.GetLatestByNameFn != nil {
		return m.GetLatestByNameFn(ctx, name)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context) ([]domain.Submission, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []domain.Submission{}, nil
}

func (m *Repo) UpdateStatus(ctx context.Context, id uint64, status domain.Status, comment string) (int64, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status, comment)
	}
	return 0, nil
}

func (m *Repo) Delete(ctx context.Context, id uint64) (int64, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return 0, nil
}
