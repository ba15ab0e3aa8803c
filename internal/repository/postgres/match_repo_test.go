package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*MatchRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewMatchRepo(db), mock
}

func TestCreateReturnsNewMatch(t *testing.T) {
	repo, mock := newMockRepo(t)
	rows := sqlmock.NewRows([]string{"id", "status", "score_us", "score_them", "created_at"}).
		AddRow("m-1", "waiting", 0, 0, time.Now())
	mock.ExpectQuery("INSERT INTO matches").WillReturnRows(rows)

	m, err := repo.Create(context.Background())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.ID != "m-1" || m.Status != "waiting" {
		t.Errorf("unexpected match: %+v", m)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFindByIDReturnsNilOnNoRows(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT id, status, winner").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "winner", "score_us", "score_them", "created_at", "started_at", "finished_at"}))

	m, err := repo.FindByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if m != nil {
		t.Errorf("expected nil match for an unknown ID, got %+v", m)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSeatBotUpsertsSeat(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("INSERT INTO match_seats").
		WithArgs("m-1", 0, "hard").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SeatBot(context.Background(), "m-1", 0, "hard"); err != nil {
		t.Fatalf("SeatBot: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateScoresAndSetFinished(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("UPDATE matches SET score_us").
		WithArgs("m-1", 162, 90).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE matches SET status = 'finished'").
		WithArgs("m-1", "Us").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateScores(context.Background(), "m-1", 162, 90); err != nil {
		t.Fatalf("UpdateScores: %v", err)
	}
	if err := repo.SetFinished(context.Background(), "m-1", "Us"); err != nil {
		t.Fatalf("SetFinished: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
