package postgres

import (
	"context"
	"fmt"

	"github.com/ogurasousui/timesheet-core/internal/core/absence"
	pgdb "github.com/ogurasousui/timesheet-core/internal/platform/db/postgres"
)

// AbsenceTypeRepository は PostgreSQL を参照する absence.Loader 実装です。
type AbsenceTypeRepository struct {
	pool pgdb.Queryer
}

// NewAbsenceTypeRepository は AbsenceTypeRepository を生成します。
func NewAbsenceTypeRepository(pool pgdb.Queryer) *AbsenceTypeRepository {
	return &AbsenceTypeRepository{pool: pool}
}

// ListOrdered は表示順の不在区分カタログを返します。
func (r *AbsenceTypeRepository) ListOrdered(ctx context.Context) (absence.Catalog, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT code, display_name, requires_hours
          FROM absence_types
         ORDER BY sort_order, code
    `)
	if err != nil {
		return absence.Catalog{}, fmt.Errorf("list absence types: %w", err)
	}
	defer rows.Close()

	var types []absence.Type
	for rows.Next() {
		var t absence.Type
		if err := rows.Scan(&t.Code, &t.DisplayName, &t.RequiresHours); err != nil {
			return absence.Catalog{}, fmt.Errorf("scan absence type: %w", err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return absence.Catalog{}, fmt.Errorf("list absence types: %w", err)
	}

	return absence.NewCatalog(types), nil
}
