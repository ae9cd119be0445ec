package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSessionRepositoryGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := SessionRepository{DB: db}

	mock.ExpectQuery("FROM booking_sessions").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"snapshot"}).AddRow([]byte(`{"schemaVersion":2}`)))

	blob, found, err := repo.Get(1)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if !found || string(blob) != `{"schemaVersion":2}` {
		t.Fatalf("unexpected result: found=%v blob=%s", found, blob)
	}

	// a missing row is not an error
	mock.ExpectQuery("FROM booking_sessions").WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"snapshot"}))

	blob, found, err = repo.Get(2)
	if err != nil {
		t.Fatalf("get error on missing row: %v", err)
	}
	if found || blob != nil {
		t.Fatalf("missing row should report not found, got found=%v blob=%v", found, blob)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSessionRepositorySaveUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := SessionRepository{DB: db}
	blob := []byte(`{"pickupLocation":"Terminal 1"}`)

	mock.ExpectExec("INSERT INTO booking_sessions").WithArgs(int64(1), blob).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO booking_sessions").WithArgs(int64(1), blob).
		WillReturnResult(sqlmock.NewResult(1, 2))

	if err := repo.Save(1, blob); err != nil {
		t.Fatalf("first save error: %v", err)
	}
	if err := repo.Save(1, blob); err != nil {
		t.Fatalf("second save error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSessionRepositoryDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := SessionRepository{DB: db}

	mock.ExpectExec("DELETE FROM booking_sessions").WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(1); err != nil {
		t.Fatalf("delete of absent row must not error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
