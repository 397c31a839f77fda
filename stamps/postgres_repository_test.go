package stamps

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestInsertCollectionConditional(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewPostgresRepository(db)
	insert := regexp.QuoteMeta(`
		INSERT INTO user_stamps (user_id, stamp_id, collected_at, method)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, stamp_id) DO NOTHING
	`)

	mock.ExpectExec(insert).
		WithArgs("U1", "S1", int64(1700000000), "GPS").
		WillReturnResult(sqlmock.NewResult(0, 1))

	inserted, err := repo.InsertCollection(context.Background(), "U1", "S1", "GPS", 1700000000)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if !inserted {
		t.Fatal("expected first insert to report inserted")
	}

	// second attempt hits the conflict clause and affects zero rows
	mock.ExpectExec(insert).
		WithArgs("U1", "S1", int64(1700000001), "GPS").
		WillReturnResult(sqlmock.NewResult(0, 0))

	inserted, err = repo.InsertCollection(context.Background(), "U1", "S1", "GPS", 1700000001)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if inserted {
		t.Fatal("expected duplicate insert to report not inserted")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetStampMasterNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT stamp_id, name, type").
		WithArgs("MISSING").
		WillReturnRows(sqlmock.NewRows([]string{
			"stamp_id", "name", "type", "valid_from", "valid_to", "image_url", "lat", "lon", "radius_m",
		}))

	m, err := repo.GetStampMaster(context.Background(), "MISSING")
	if err != nil {
		t.Fatalf("expected no error for missing stamp, got %v", err)
	}
	if m != nil {
		t.Fatalf("expected nil master, got %+v", m)
	}
}

func TestGetStampMasterWithLocation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{
		"stamp_id", "name", "type", "valid_from", "valid_to", "image_url", "lat", "lon", "radius_m",
	}).AddRow("S1", "Station Plaza", "GPS", nil, nil, "https://img", 35.6812, 139.7671, 100.0)

	mock.ExpectQuery("SELECT stamp_id, name, type").
		WithArgs("S1").
		WillReturnRows(rows)

	m, err := repo.GetStampMaster(context.Background(), "S1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if m == nil || m.Location == nil {
		t.Fatalf("expected master with location, got %+v", m)
	}
	if m.Location.Lat != 35.6812 || m.Location.RadiusM != 100 {
		t.Fatalf("unexpected location: %+v", m.Location)
	}
	if m.ValidFrom != 0 || m.ValidTo != 0 {
		t.Fatalf("expected open validity window, got %+v", m)
	}
}
