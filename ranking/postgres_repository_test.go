package ranking

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"stamprally-backend/models"
)

func TestReplaceLeaderboardTransactional(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewPostgresRepository(db)
	entries := []models.RankingEntry{
		{Rank: 1, UserID: "U2", StampCount: 7, DisplayName: "Beni"},
		{Rank: 2, UserID: "U1", StampCount: 5, DisplayName: "Akira"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM rankings WHERE period_key = $1
	`)).WithArgs("weekly-2025-W45").WillReturnResult(sqlmock.NewResult(0, 3))
	prep := mock.ExpectPrepare("INSERT INTO rankings")
	prep.ExpectExec().
		WithArgs("weekly-2025-W45", 1, "U2", 7, "Beni", int64(1700000000)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs("weekly-2025-W45", 2, "U1", 5, "Akira", int64(1700000000)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.ReplaceLeaderboard(context.Background(), "weekly-2025-W45", entries, 1700000000); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReplaceLeaderboardRollsBackOnInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewPostgresRepository(db)
	entries := []models.RankingEntry{{Rank: 1, UserID: "U1", StampCount: 5, DisplayName: "Akira"}}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM rankings").
		WithArgs("weekly-2025-W45").
		WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mock.ExpectPrepare("INSERT INTO rankings")
	prep.ExpectExec().WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	if err := repo.ReplaceLeaderboard(context.Background(), "weekly-2025-W45", entries, 1700000000); err == nil {
		t.Fatal("expected replace to fail")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCountCollectionsSince(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"user_id", "count", "display_name"}).
		AddRow("U1", 5, "Akira").
		AddRow("U2", 3, "Unknown")
	mock.ExpectQuery("SELECT us.user_id, COUNT").
		WithArgs(int64(1700000000)).
		WillReturnRows(rows)

	counts, err := repo.CountCollectionsSince(context.Background(), 1700000000)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if len(counts) != 2 || counts[0].UserID != "U1" || counts[0].StampCount != 5 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}
