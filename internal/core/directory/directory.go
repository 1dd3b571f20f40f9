package directory

import (
	"context"
	"time"
)

// Employee は従業員ディレクトリのスナップショットです。
// ディレクトリ自体の CRUD は外部コラボレーターの責務であり、
// 本モジュールは参照データとしてのみ読み取ります。
type Employee struct {
	ID               string
	DisplayName      string
	Position         string
	StoreID          string
	ZoneID           string
	DelegatedFrom    *time.Time
	DelegatedStoreID string
}

// DelegatedAwayFrom は、与えられた日付時点で従業員が storeID から
// 別店舗へ委任済みかどうかを返します。委任日以降のセルは編集不可です。
func (e Employee) DelegatedAwayFrom(storeID string, date time.Time) bool {
	if e.DelegatedFrom == nil {
		return false
	}
	if e.DelegatedStoreID == "" || e.DelegatedStoreID == storeID {
		return false
	}
	return !date.Before(*e.DelegatedFrom)
}

// Resolver は従業員 ID からスナップショットを解決します。
type Resolver interface {
	Resolve(ctx context.Context, ids []string) (map[string]Employee, error)
}

// StaticResolver は固定のスナップショットを返す Resolver 実装です。
type StaticResolver struct {
	employees map[string]Employee
}

// NewStaticResolver は StaticResolver を生成します。
func NewStaticResolver(employees []Employee) *StaticResolver {
	m := make(map[string]Employee, len(employees))
	for _, e := range employees {
		m[e.ID] = e
	}
	return &StaticResolver{employees: m}
}

// Resolve は既知の ID のみを含むマップを返します。
func (r *StaticResolver) Resolve(_ context.Context, ids []string) (map[string]Employee, error) {
	out := make(map[string]Employee, len(ids))
	for _, id := range ids {
		if e, ok := r.employees[id]; ok {
			out[id] = e
		}
	}
	return out, nil
}
