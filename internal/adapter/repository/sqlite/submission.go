package sqlite

import (
	"context"
	"errors"
	"fmt"

	"equipment-loan/internal/domain/submission"
	infradb "equipment-loan/internal/infrastructure/db"

	"gorm.io/gorm"
)

// SubmissionRepository opens its own connection per call unless it is bound
// to a transaction by GormUoW.
type SubmissionRepository struct {
	db   *gorm.DB
	conn *infradb.Connector
}

func NewSubmissionRepository(conn *infradb.Connector) *SubmissionRepository {
	return &SubmissionRepository{conn: conn}
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, submission.ErrStoreUnavailable, err)
}

func (r *SubmissionRepository) session(ctx context.Context) (*gorm.DB, func(), error) {
	if r.db != nil {
		return r.db.WithContext(ctx), func() {}, nil
	}
	g, err := r.conn.Open(ctx)
	if err != nil {
		return nil, nil, unavailable("connect", err)
	}
	return g, func() { r.conn.Close(g) }, nil
}

func (r *SubmissionRepository) Create(ctx context.Context, s *submission.Submission) error {
	g, done, err := r.session(ctx)
	if err != nil {
		return err
	}
	defer done()

	s.ID = 0
	s.Status = submission.StatusPending
	s.ReviewComment = ""
	if err := g.Create(s).Error; err != nil {
		return unavailable("create submission", err)
	}
	return nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id uint64) (*submission.Submission, error) {
	g, done, err := r.session(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	var out submission.Submission
	if err := g.Where("id = ?", id).First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, submission.ErrNotFound
		}
		return nil, unavailable("get submission", err)
	}
	return &out, nil
}

func (r *SubmissionRepository) GetLatestByName(ctx context.Context, name string) (*submission.Submission, error) {
	g, done, err := r.session(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	var out submission.Submission
	res := g.Where("name = ?", name).Order("id DESC").First(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, submission.ErrNotFound
		}
		return nil, unavailable("find submission by name", res.Error)
	}
	return &out, nil
}

func (r *SubmissionRepository) List(ctx context.Context) ([]submission.Submission, error) {
	g, done, err := r.session(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	out := []submission.Submission{}
	if err := g.Order("id DESC").Find(&out).Error; err != nil {
		return nil, unavailable("list submissions", err)
	}
	return out, nil
}

func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id uint64, status submission.Status, comment string) (int64, error) {
	g, done, err := r.session(ctx)
	if err != nil {
		return 0, err
	}
	defer done()

	// map form so an empty comment still overwrites the previous one
	res := g.Model(&submission.Submission{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":         string(status),
			"review_comment": comment,
		})
	if res.Error != nil {
		return 0, unavailable("update submission status", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *SubmissionRepository) Delete(ctx context.Context, id uint64) (int64, error) {
	g, done, err := r.session(ctx)
	if err != nil {
		return 0, err
	}
	defer done()

	res := g.Where("id = ?", id).Delete(&submission.Submission{})
	if res.Error != nil {
		return 0, unavailable("delete submission", res.Error)
	}
	return res.RowsAffected, nil
}
