package sqlite

import (
	"context"
	_ "embed"
	"fmt"

	infradb "equipment-loan/internal/infrastructure/db"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed schema.sql
var schemaSQL string

const submissionsTable = "submissions"

// Columns added after the first release. Databases written before them get an
// ALTER TABLE with an empty default; existing rows are kept.
var upgradeColumns = []struct {
	name string
	ddl  string
}{
	{name: "review_comment", ddl: "ALTER TABLE submissions ADD COLUMN review_comment TEXT DEFAULT ''"},
}

// Migrate creates the submissions table when absent and adds any missing
// upgrade columns. Safe to run on every start.
func Migrate(ctx context.Context, conn *infradb.Connector, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	g, err := conn.Open(ctx)
	if err != nil {
		return unavailable("migrate", err)
	}
	defer conn.Close(g)

	if err := g.Exec(schemaSQL).Error; err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	cols, err := columnNames(g, submissionsTable)
	if err != nil {
		return err
	}
	for _, col := range upgradeColumns {
		if _, ok := cols[col.name]; ok {
			continue
		}
		if err := g.Exec(col.ddl).Error; err != nil {
			return fmt.Errorf("add column %s: %w", col.name, err)
		}
		log.Info("schema: added missing column",
			zap.String("table", submissionsTable),
			zap.String("column", col.name))
	}
	return nil
}

func columnNames(g *gorm.DB, table string) (map[string]struct{}, error) {
	rows, err := g.Raw(fmt.Sprintf("PRAGMA table_info(%s)", table)).Rows()
	if err != nil {
		return nil, fmt.Errorf("table info: %w", err)
	}
	defer rows.Close()

	out := make(map[string]struct{})
	for rows.Next() {
		var (
			cid     int
			name    string
			typeStr string
			notNull int
			dflt    any
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typeStr, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scan table info: %w", err)
		}
		out[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate table info: %w", err)
	}
	return out, nil
}
