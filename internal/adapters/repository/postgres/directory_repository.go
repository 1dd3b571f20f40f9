package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ogurasousui/timesheet-core/internal/core/directory"
	"github.com/ogurasousui/timesheet-core/internal/core/timesheet"
	pgdb "github.com/ogurasousui/timesheet-core/internal/platform/db/postgres"
)

// DirectoryRepository は従業員ディレクトリを参照する
// directory.Resolver 実装です。ディレクトリの更新は本モジュールの
// 責務外で、読み取りのみ行います。
type DirectoryRepository struct {
	pool pgdb.Queryer
}

// NewDirectoryRepository は DirectoryRepository を生成します。
func NewDirectoryRepository(pool pgdb.Queryer) *DirectoryRepository {
	return &DirectoryRepository{pool: pool}
}

// Resolve は与えられた ID のうち存在する従業員のスナップショットを
// 返します。未知の ID はマップに含まれません。
func (r *DirectoryRepository) Resolve(ctx context.Context, ids []string) (map[string]directory.Employee, error) {
	if len(ids) == 0 {
		return map[string]directory.Employee{}, nil
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, display_name, position, store_id, zone_id, delegated_from, delegated_store_id
          FROM employees
         WHERE id = ANY($1)
    `, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve employees: %w", err)
	}
	defer rows.Close()

	out := make(map[string]directory.Employee, len(ids))
	for rows.Next() {
		var (
			emp              directory.Employee
			position         sql.NullString
			zoneID           sql.NullString
			delegatedFrom    sql.NullTime
			delegatedStoreID sql.NullString
		)
		if err := rows.Scan(&emp.ID, &emp.DisplayName, &position, &emp.StoreID, &zoneID, &delegatedFrom, &delegatedStoreID); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		emp.Position = position.String
		emp.ZoneID = zoneID.String
		emp.DelegatedStoreID = delegatedStoreID.String
		if delegatedFrom.Valid {
			from := timesheet.NormalizeDate(delegatedFrom.Time.In(time.UTC))
			emp.DelegatedFrom = &from
		}
		out[emp.ID] = emp
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("resolve employees: %w", err)
	}

	return out, nil
}
