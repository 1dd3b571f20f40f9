package timesheet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ogurasousui/timesheet-core/internal/core/absence"
	"github.com/ogurasousui/timesheet-core/internal/core/directory"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Service はグリッドの検証・重複判定・永続化ユースケースをまとめます。
type Service struct {
	repo      Repository
	catalogs  absence.Loader
	directory directory.Resolver
	clock     Clock
	tx        TransactionManager
}

// UseCase はグリッドユースケースの公開インターフェースです。
type UseCase interface {
	ValidateTimesheetGrid(ctx context.Context, grid *Grid, restrictions RestrictionSet) (*GridValidation, error)
	CheckForDuplicate(ctx context.Context, storeID string, periodStart, periodEnd time.Time) (*DuplicationCheckResult, error)
	SaveTimesheetGrid(ctx context.Context, grid *Grid, opts SaveOptions) (*SaveResult, error)
}

// NewService は Service を生成します。catalogs と resolver は任意で、
// nil の場合は空カタログ・解決なしで動作します。
func NewService(repo Repository, catalogs absence.Loader, resolver directory.Resolver, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, catalogs: catalogs, directory: resolver, clock: clock, tx: tx}
}

// SaveOptions は保存呼び出しの調整項目です。
type SaveOptions struct {
	// ForceCreate は重複判定による保存ブロックをスキップします。
	// 正規行への upsert 自体は変わらず、1 キー 1 行の不変条件は保たれます。
	ForceCreate bool
	// SkipValidation はグリッド検証を省略します。
	SkipValidation bool
	// Restrictions は委任制限の明示指定です。nil の場合は
	// ディレクトリから導出します。
	Restrictions RestrictionSet
	// Session は呼び出し側が保持する単一飛行ガードです。nil の場合は
	// 呼び出しごとに新しいセッションを使います。
	Session *SaveSession
}

// ValidateTimesheetGrid はグリッド全体を検証します。カタログの取得に
// 失敗した場合は空カタログとして続行し、ステータス照合は保留扱いに
// なります（カタログは非同期ロードされる参照データのため）。
func (s *Service) ValidateTimesheetGrid(ctx context.Context, grid *Grid, restrictions RestrictionSet) (*GridValidation, error) {
	if grid == nil {
		return nil, ErrNilGrid
	}

	if restrictions == nil {
		derived, err := s.BuildRestrictions(ctx, grid)
		if err != nil {
			return nil, err
		}
		restrictions = derived
	}

	return ValidateGrid(ValidateGridInput{
		Grid:         grid,
		Catalog:      s.loadCatalog(ctx),
		Restrictions: restrictions,
	}), nil
}

// BuildRestrictions はディレクトリの委任情報から、グリッドの店舗を
// 離れた従業員の編集制限を導出します。
func (s *Service) BuildRestrictions(ctx context.Context, grid *Grid) (RestrictionSet, error) {
	if s.directory == nil || grid == nil {
		return nil, nil
	}

	ids := make([]string, 0, len(grid.Entries))
	for _, entry := range grid.Entries {
		if entry != nil && entry.EmployeeID != "" {
			ids = append(ids, entry.EmployeeID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	resolved, err := s.directory.Resolve(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve employees: %w", err)
	}

	set := make(RestrictionSet)
	for id, emp := range resolved {
		if emp.DelegatedFrom != nil && emp.DelegatedStoreID != "" && emp.DelegatedStoreID != grid.StoreID {
			set[id] = NormalizeDate(*emp.DelegatedFrom)
		}
	}
	return set, nil
}

// CheckForDuplicate は同一店舗の既存永続グリッドとの衝突を分類します。
func (s *Service) CheckForDuplicate(ctx context.Context, storeID string, periodStart, periodEnd time.Time) (*DuplicationCheckResult, error) {
	if strings.TrimSpace(storeID) == "" {
		return nil, ErrStoreRequired
	}

	start := NormalizeDate(periodStart)
	end := NormalizeDate(periodEnd)
	if start.After(end) {
		return nil, ErrInvalidPeriod
	}

	from, to := duplicateWindow(start, end)

	var summaries []*GridSummary
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		rows, err := s.repo.ListByStoreBetween(txCtx, storeID, from, to)
		if err != nil {
			return err
		}
		summaries = rows
		return nil
	}); err != nil {
		return nil, err
	}

	result := classifyConflict(start, end, summaries)
	return &result, nil
}

// SaveTimesheetGrid はグリッドを検証し、重複を判定し、正規行へ
// 挿入またはマージします。検証失敗・重複衝突・ストレージ障害は
// error ではなく SaveResult として返り、error は二重保存などの
// 呼び出し誤りに限られます。
func (s *Service) SaveTimesheetGrid(ctx context.Context, grid *Grid, opts SaveOptions) (result *SaveResult, err error) {
	if grid == nil {
		return nil, ErrNilGrid
	}

	session := opts.Session
	if session == nil {
		session = NewSaveSession()
	}
	if beginErr := session.begin(); beginErr != nil {
		return nil, beginErr
	}
	defer session.finish()

	sessionID := session.ID()

	defer func() {
		if r := recover(); r != nil {
			result = storageFailureResult(sessionID, fmt.Errorf("unexpected failure: %v", r))
			err = nil
		}
	}()

	if resolveErr := s.resolveEntries(ctx, grid); resolveErr != nil {
		return storageFailureResult(sessionID, resolveErr), nil
	}

	if !opts.SkipValidation {
		validation, valErr := s.ValidateTimesheetGrid(ctx, grid, opts.Restrictions)
		if valErr != nil {
			return storageFailureResult(sessionID, valErr), nil
		}
		if !validation.Valid {
			return validationFailureResult(sessionID, validation), nil
		}
	}

	if advErr := session.advance(StateCheckingDuplicate); advErr != nil {
		return cancelledResult(sessionID), nil
	}

	periodStart := NormalizeDate(grid.PeriodStart)
	periodEnd := NormalizeDate(grid.PeriodEnd)

	if !opts.ForceCreate {
		dup, dupErr := s.CheckForDuplicate(ctx, grid.StoreID, periodStart, periodEnd)
		if dupErr != nil {
			return storageFailureResult(sessionID, dupErr), nil
		}
		// 同一キーの正規行はマージ先であり、ブロック対象の衝突ではない。
		if dup.HasDuplicate && dup.ConflictType != ConflictExactPeriod {
			return duplicateFailureResult(sessionID, dup), nil
		}
	}

	if advErr := session.advance(StatePersisting); advErr != nil {
		return cancelledResult(sessionID), nil
	}

	candidate := serializeEntries(grid.Entries)

	var (
		saved    *StoredGrid
		outcomes []EmployeeSaveResult
		created  bool
	)
	txErr := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, findErr := s.repo.FindByKey(txCtx, grid.StoreID, periodStart, periodEnd)
		if findErr != nil && !errors.Is(findErr, ErrGridNotFound) {
			return findErr
		}

		now := s.clock.Now()
		stored := &StoredGrid{
			StoreID:     grid.StoreID,
			ZoneID:      grid.ZoneID,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if existing == nil {
			created = true
			stored.Employees = candidate
			outcomes = employeeOutcomes(candidate, nil)
		} else {
			stored.ID = existing.ID
			stored.CreatedAt = existing.CreatedAt
			if stored.ZoneID == "" {
				stored.ZoneID = existing.ZoneID
			}
			stored.Employees = mergeEmployees(existing.Employees, candidate)
			outcomes = employeeOutcomes(candidate, existing.Employees)
		}
		stored.TotalHours, stored.EmployeeCount = recomputeTotals(stored.Employees)
		stored.Title = buildTitle(periodStart, stored.EmployeeCount)

		row, upsertErr := s.repo.Upsert(txCtx, stored)
		if upsertErr != nil {
			return upsertErr
		}
		saved = row
		return nil
	})
	if txErr != nil {
		return storageFailureResult(sessionID, txErr), nil
	}

	return &SaveResult{
		Success:       true,
		SessionID:     sessionID,
		GridID:        saved.ID,
		Created:       created,
		Title:         saved.Title,
		TotalHours:    saved.TotalHours,
		EmployeeCount: saved.EmployeeCount,
		Employees:     outcomes,
	}, nil
}

// resolveEntries は表示名が欠けたエントリをディレクトリで補完します。
func (s *Service) resolveEntries(ctx context.Context, grid *Grid) error {
	if s.directory == nil {
		return nil
	}

	missing := make([]string, 0, len(grid.Entries))
	for _, entry := range grid.Entries {
		if entry != nil && entry.EmployeeID != "" && entry.DisplayName == "" {
			missing = append(missing, entry.EmployeeID)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	resolved, err := s.directory.Resolve(ctx, missing)
	if err != nil {
		return fmt.Errorf("resolve employees: %w", err)
	}

	for _, entry := range grid.Entries {
		if entry == nil || entry.DisplayName != "" {
			continue
		}
		if info, ok := resolved[entry.EmployeeID]; ok {
			entry.DisplayName = info.DisplayName
			if entry.Position == "" {
				entry.Position = info.Position
			}
		}
	}
	return nil
}

func (s *Service) loadCatalog(ctx context.Context) absence.Catalog {
	if s.catalogs == nil {
		return absence.Catalog{}
	}
	catalog, err := s.catalogs.ListOrdered(ctx)
	if err != nil {
		// 取得失敗は未ロードと同じ扱い。照合は保留となりブロックしない。
		return absence.Catalog{}
	}
	return catalog
}
