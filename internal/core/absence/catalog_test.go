package absence

import (
	"context"
	"testing"
)

func TestNewCatalog_PreservesOrderAndDeduplicates(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog([]Type{
		{Code: "CO", DisplayName: "Paid leave", RequiresHours: false},
		{Code: "CM", DisplayName: "Sick leave", RequiresHours: false},
		{Code: "CO", DisplayName: "duplicate", RequiresHours: true},
		{Code: "", DisplayName: "blank"},
		{Code: "DP", DisplayName: "Partial delegation", RequiresHours: true},
	})

	if catalog.Len() != 3 {
		t.Fatalf("expected 3 types, got %d", catalog.Len())
	}

	types := catalog.Types()
	if types[0].Code != "CO" || types[1].Code != "CM" || types[2].Code != "DP" {
		t.Fatalf("unexpected order: %+v", types)
	}

	co, ok := catalog.Find("CO")
	if !ok {
		t.Fatalf("expected CO to be found")
	}
	if co.DisplayName != "Paid leave" || co.RequiresHours {
		t.Fatalf("duplicate code should not overwrite first entry: %+v", co)
	}

	if _, ok := catalog.Find("XX"); ok {
		t.Fatalf("unexpected match for unknown code")
	}
}

func TestCatalog_Empty(t *testing.T) {
	t.Parallel()

	if !NewCatalog(nil).Empty() {
		t.Fatalf("nil catalog should be empty")
	}
	if NewCatalog([]Type{{Code: "CO"}}).Empty() {
		t.Fatalf("non-empty catalog reported empty")
	}
}

func TestStaticLoader_ListOrdered(t *testing.T) {
	t.Parallel()

	loader := NewStaticLoader([]Type{{Code: "CO", DisplayName: "Paid leave"}})
	catalog, err := loader.ListOrdered(context.Background())
	if err != nil {
		t.Fatalf("ListOrdered returned error: %v", err)
	}
	if catalog.Len() != 1 {
		t.Fatalf("expected 1 type, got %d", catalog.Len())
	}
}
