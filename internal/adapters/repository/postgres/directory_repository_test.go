package postgres

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestDirectoryRepository_Resolve(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewDirectoryRepository(mock)

	delegated := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "display_name", "position", "store_id", "zone_id", "delegated_from", "delegated_store_id"}).
		AddRow("emp-1", "Ana Pop", "cashier", "store-1", "zone-1", nil, nil).
		AddRow("emp-2", "Ion Rus", nil, "store-1", nil, delegated, "store-2")

	mock.ExpectQuery("SELECT id, display_name, position").
		WithArgs([]string{"emp-1", "emp-2"}).
		WillReturnRows(rows)

	resolved, err := repo.Resolve(context.Background(), []string{"emp-1", "emp-2"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(resolved))
	}

	ana := resolved["emp-1"]
	if ana.Position != "cashier" || ana.DelegatedFrom != nil {
		t.Fatalf("unexpected snapshot: %+v", ana)
	}

	ion := resolved["emp-2"]
	if ion.DelegatedFrom == nil || !ion.DelegatedFrom.Equal(delegated) {
		t.Fatalf("delegation date not decoded: %+v", ion)
	}
	if !ion.DelegatedAwayFrom("store-1", time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("emp-2 should be restricted on store-1 after delegation")
	}
	if ion.DelegatedAwayFrom("store-1", time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("emp-2 should not be restricted before the delegation date")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDirectoryRepository_Resolve_EmptyInput(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewDirectoryRepository(mock)

	resolved, err := repo.Resolve(context.Background(), nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(resolved) != 0 {
		t.Fatalf("expected empty result, got %+v", resolved)
	}
}
