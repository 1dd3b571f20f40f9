package timesheet

import (
	"context"
	"time"
)

// Repository はグリッド永続化の抽象です。ハードデリートは
// 本コアの責務外のため公開しません。
type Repository interface {
	// FindByKey は (store, period) キーで正規行を取得します。
	// 存在しない場合は ErrGridNotFound を返します。
	FindByKey(ctx context.Context, storeID string, periodStart, periodEnd time.Time) (*StoredGrid, error)
	// Upsert は (store_id, period_start, period_end) の一意制約上で
	// 原子的に挿入または更新します。
	Upsert(ctx context.Context, grid *StoredGrid) (*StoredGrid, error)
	// ListByStoreBetween は期間が [from, to] と交差する同一店舗の
	// グリッド要約を返します。重複分類に使用します。
	ListByStoreBetween(ctx context.Context, storeID string, from, to time.Time) ([]*GridSummary, error)
}
