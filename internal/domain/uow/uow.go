package uow

import (
	"context"

	"equipment-loan/internal/domain/submission"
)

// domain/uow/uow.go
type Repos struct {
	Submissions submission.Repository
}

type UnitOfWork interface {
	// plain tx on a fresh connection
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
