package absence

import "context"

// Type は不在区分を表します。RequiresHours が true の区分は
// 部分欠勤であり、明示的な時間数を伴う必要があります。
type Type struct {
	Code          string
	DisplayName   string
	RequiresHours bool
}

// Catalog は表示順を保持した不在区分の集合です。
type Catalog struct {
	types []Type
	index map[string]int
}

// NewCatalog は与えられた順序を保持する Catalog を生成します。
// 同一コードが重複した場合は先勝ちです。
func NewCatalog(types []Type) Catalog {
	index := make(map[string]int, len(types))
	kept := make([]Type, 0, len(types))
	for _, t := range types {
		if t.Code == "" {
			continue
		}
		if _, ok := index[t.Code]; ok {
			continue
		}
		index[t.Code] = len(kept)
		kept = append(kept, t)
	}
	return Catalog{types: kept, index: index}
}

// Find はコードに対応する区分を返します。
func (c Catalog) Find(code string) (Type, bool) {
	i, ok := c.index[code]
	if !ok {
		return Type{}, false
	}
	return c.types[i], true
}

// Empty はカタログが未ロード（空）かどうかを返します。
func (c Catalog) Empty() bool {
	return len(c.types) == 0
}

// Types は表示順の区分一覧を返します。
func (c Catalog) Types() []Type {
	out := make([]Type, len(c.types))
	copy(out, c.types)
	return out
}

// Len は区分数を返します。
func (c Catalog) Len() int {
	return len(c.types)
}

// Loader は不在区分カタログの取得を抽象化します。
// カタログは検証時に参照データとして取得され、空のカタログは
// ステータス照合を一時的に緩和する扱いになります。
type Loader interface {
	ListOrdered(ctx context.Context) (Catalog, error)
}

// StaticLoader は固定のカタログを返す Loader 実装です。
// テストおよびオフライン検証で使用します。
type StaticLoader struct {
	catalog Catalog
}

// NewStaticLoader は StaticLoader を生成します。
func NewStaticLoader(types []Type) *StaticLoader {
	return &StaticLoader{catalog: NewCatalog(types)}
}

// ListOrdered は保持しているカタログをそのまま返します。
func (l *StaticLoader) ListOrdered(context.Context) (Catalog, error) {
	return l.catalog, nil
}
