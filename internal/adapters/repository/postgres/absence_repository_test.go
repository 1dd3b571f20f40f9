package postgres

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestAbsenceTypeRepository_ListOrdered(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewAbsenceTypeRepository(mock)

	rows := pgxmock.NewRows([]string{"code", "display_name", "requires_hours"}).
		AddRow("CO", "Paid leave", false).
		AddRow("CM", "Sick leave", false).
		AddRow("DP", "Partial delegation", true)

	mock.ExpectQuery("SELECT code, display_name, requires_hours").
		WillReturnRows(rows)

	catalog, err := repo.ListOrdered(context.Background())
	if err != nil {
		t.Fatalf("ListOrdered returned error: %v", err)
	}
	if catalog.Len() != 3 {
		t.Fatalf("expected 3 types, got %d", catalog.Len())
	}

	types := catalog.Types()
	if types[0].Code != "CO" || types[2].Code != "DP" {
		t.Fatalf("order not preserved: %+v", types)
	}
	if dp, _ := catalog.Find("DP"); !dp.RequiresHours {
		t.Fatalf("DP should require hours: %+v", dp)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAbsenceTypeRepository_ListOrdered_QueryError(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewAbsenceTypeRepository(mock)

	queryErr := errors.New("relation does not exist")
	mock.ExpectQuery("SELECT code, display_name, requires_hours").
		WillReturnError(queryErr)

	if _, err := repo.ListOrdered(context.Background()); !errors.Is(err, queryErr) {
		t.Fatalf("expected wrapped query error, got %v", err)
	}
}
