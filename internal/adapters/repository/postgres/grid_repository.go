package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/timesheet-core/internal/core/timesheet"
	pgdb "github.com/ogurasousui/timesheet-core/internal/platform/db/postgres"
)

const gridUniqueViolationCode = "23505"

// GridRepository は PostgreSQL を利用したグリッド永続化の実装です。
// (store_id, period_start, period_end) の一意制約が 1 キー 1 行の
// 不変条件を担保します。
type GridRepository struct {
	pool pgdb.Queryer
}

// NewGridRepository は GridRepository を生成します。
func NewGridRepository(pool pgdb.Queryer) *GridRepository {
	return &GridRepository{pool: pool}
}

// FindByKey は (store, period) キーで正規行を取得します。
func (r *GridRepository) FindByKey(ctx context.Context, storeID string, periodStart, periodEnd time.Time) (*timesheet.StoredGrid, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, store_id, zone_id, period_start, period_end, title, total_hours, employee_count, cells, created_at, updated_at
          FROM timesheet_grids
         WHERE store_id = $1 AND period_start = $2 AND period_end = $3
         LIMIT 1
    `,
		storeID,
		timesheet.NormalizeDate(periodStart),
		timesheet.NormalizeDate(periodEnd),
	)

	found, err := scanStoredGrid(row)
	if err != nil {
		return nil, translateGridPgError(err)
	}
	return found, nil
}

// Upsert は一意キー上で原子的に挿入または更新します。既存行がある
// 場合はマージ済みペイロードで上書きし、created_at は保持されます。
func (r *GridRepository) Upsert(ctx context.Context, grid *timesheet.StoredGrid) (*timesheet.StoredGrid, error) {
	payload, err := json.Marshal(grid.Employees)
	if err != nil {
		return nil, fmt.Errorf("marshal cells: %w", err)
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO timesheet_grids (store_id, zone_id, period_start, period_end, title, total_hours, employee_count, cells, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (store_id, period_start, period_end) DO UPDATE
           SET zone_id = EXCLUDED.zone_id,
               title = EXCLUDED.title,
               total_hours = EXCLUDED.total_hours,
               employee_count = EXCLUDED.employee_count,
               cells = EXCLUDED.cells,
               updated_at = EXCLUDED.updated_at
        RETURNING id, store_id, zone_id, period_start, period_end, title, total_hours, employee_count, cells, created_at, updated_at
    `,
		grid.StoreID,
		grid.ZoneID,
		timesheet.NormalizeDate(grid.PeriodStart),
		timesheet.NormalizeDate(grid.PeriodEnd),
		grid.Title,
		grid.TotalHours,
		grid.EmployeeCount,
		payload,
		grid.CreatedAt,
		grid.UpdatedAt,
	)

	saved, err := scanStoredGrid(row)
	if err != nil {
		return nil, translateGridPgError(err)
	}
	return saved, nil
}

// ListByStoreBetween は期間が [from, to] と交差する同一店舗の
// グリッド要約を返します。
func (r *GridRepository) ListByStoreBetween(ctx context.Context, storeID string, from, to time.Time) ([]*timesheet.GridSummary, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, store_id, period_start, period_end, total_hours, employee_count, created_at
          FROM timesheet_grids
         WHERE store_id = $1 AND period_end >= $2 AND period_start <= $3
         ORDER BY period_start, id
    `,
		storeID,
		timesheet.NormalizeDate(from),
		timesheet.NormalizeDate(to),
	)
	if err != nil {
		return nil, translateGridPgError(err)
	}
	defer rows.Close()

	var summaries []*timesheet.GridSummary
	for rows.Next() {
		summary, err := scanGridSummary(rows)
		if err != nil {
			return nil, translateGridPgError(err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, translateGridPgError(err)
	}

	return summaries, nil
}

func scanStoredGrid(row pgx.Row) (*timesheet.StoredGrid, error) {
	var (
		id            string
		storeID       string
		zoneID        string
		periodStart   time.Time
		periodEnd     time.Time
		title         string
		totalHours    float64
		employeeCount int
		cells         []byte
		createdAt     time.Time
		updatedAt     time.Time
	)

	if err := row.Scan(
		&id,
		&storeID,
		&zoneID,
		&periodStart,
		&periodEnd,
		&title,
		&totalHours,
		&employeeCount,
		&cells,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, timesheet.ErrGridNotFound
		}
		return nil, err
	}

	employees := make(map[string]*timesheet.StoredEmployee)
	if len(cells) > 0 {
		if err := json.Unmarshal(cells, &employees); err != nil {
			return nil, fmt.Errorf("unmarshal cells: %w", err)
		}
	}

	return &timesheet.StoredGrid{
		ID:            id,
		StoreID:       storeID,
		ZoneID:        zoneID,
		PeriodStart:   timesheet.NormalizeDate(periodStart),
		PeriodEnd:     timesheet.NormalizeDate(periodEnd),
		Title:         title,
		TotalHours:    totalHours,
		EmployeeCount: employeeCount,
		Employees:     employees,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}, nil
}

func scanGridSummary(row pgx.Row) (*timesheet.GridSummary, error) {
	var (
		id            string
		storeID       string
		periodStart   time.Time
		periodEnd     time.Time
		totalHours    float64
		employeeCount int
		createdAt     time.Time
	)

	if err := row.Scan(&id, &storeID, &periodStart, &periodEnd, &totalHours, &employeeCount, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, timesheet.ErrGridNotFound
		}
		return nil, err
	}

	return &timesheet.GridSummary{
		ID:            id,
		StoreID:       storeID,
		PeriodStart:   timesheet.NormalizeDate(periodStart),
		PeriodEnd:     timesheet.NormalizeDate(periodEnd),
		TotalHours:    totalHours,
		EmployeeCount: employeeCount,
		CreatedAt:     createdAt,
	}, nil
}

func translateGridPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return timesheet.ErrGridNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == gridUniqueViolationCode {
		return timesheet.ErrDuplicatePeriod
	}

	return err
}
