package sqlite

import (
	"context"

	"equipment-loan/internal/domain/uow"
	infradb "equipment-loan/internal/infrastructure/db"

	"gorm.io/gorm"
)

type GormUoW struct{ conn *infradb.Connector }

func NewGormUoW(conn *infradb.Connector) *GormUoW { return &GormUoW{conn: conn} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	g, err := u.conn.Open(ctx)
	if err != nil {
		return unavailable("begin tx", err)
	}
	defer u.conn.Close(g)

	return g.Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Submissions: &SubmissionRepository{db: tx, conn: u.conn},
		}
		return fn(r)
	})
}
