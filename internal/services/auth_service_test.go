package services

import (
	"testing"

	"rideapp/internal/domain"
	"rideapp/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (AuthService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := AuthService{
		Users:   repositories.UserRepository{DB: db},
		Catalog: repositories.CatalogRepository{DB: db},
	}
	return svc, mock, func() { db.Close() }
}

func userRows(hash string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "phone", "event_id", "password_hash"}).
		AddRow(5, "Manager", "manager@example.com", "5550100", 3, hash)
}

func TestAuthenticateSuccess(t *testing.T) {
	svc, mock, done := newAuthService(t)
	defer done()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	mock.ExpectQuery("FROM users").WithArgs("manager@example.com").
		WillReturnRows(userRows(string(hash)))
	mock.ExpectQuery("FROM events").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "venue", "start_date", "end_date"}).
			AddRow(3, "Energy Summit", "Convention Centre", "2026-09-01", "2026-09-04"))

	user, err := svc.Authenticate(" Manager@Example.com ", "secret")
	if err != nil {
		t.Fatalf("authenticate error: %v", err)
	}
	if user.ID != 5 || user.EventID != 3 {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.Event == nil || user.Event.Name != "Energy Summit" {
		t.Fatalf("linked event not merged: %+v", user.Event)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc, mock, done := newAuthService(t)
	defer done()

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	mock.ExpectQuery("FROM users").WithArgs("manager@example.com").
		WillReturnRows(userRows(string(hash)))

	_, err := svc.Authenticate("manager@example.com", "wrong")
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestAuthenticateUnknownEmailIndistinguishable(t *testing.T) {
	svc, mock, done := newAuthService(t)
	defer done()

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	mock.ExpectQuery("FROM users").WithArgs("manager@example.com").
		WillReturnRows(userRows(string(hash)))
	mock.ExpectQuery("FROM users").WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "event_id", "password_hash"}))

	_, wrongPass := svc.Authenticate("manager@example.com", "wrong")
	_, noAccount := svc.Authenticate("nobody@example.com", "wrong")

	if !domain.IsUnauthorized(wrongPass) || !domain.IsUnauthorized(noAccount) {
		t.Fatalf("both paths must be unauthorized: %v / %v", wrongPass, noAccount)
	}
	if wrongPass.Error() != noAccount.Error() {
		t.Fatalf("responses differ and leak account existence: %q vs %q", wrongPass.Error(), noAccount.Error())
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	svc, _, done := newAuthService(t)
	defer done()

	_, err := svc.Register(RegisterInput{Name: " ", Email: "", Password: "abc"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := domain.ValidationFields(err)
	if len(fields) != 3 {
		t.Fatalf("expected name, email and password named, got %v", fields)
	}
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	svc, mock, done := newAuthService(t)
	defer done()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("Manager", "manager@example.com", "5550100", int64(3), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(5, 1))

	user, err := svc.Register(RegisterInput{
		Name:     " Manager ",
		Email:    "Manager@Example.com",
		Phone:    "5550100",
		EventID:  3,
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if user.ID != 5 || user.Email != "manager@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
