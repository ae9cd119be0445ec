package services

import (
	"fmt"
	"log"
	"strings"

	"rideapp/internal/domain"
	"rideapp/internal/domain/models"
	"rideapp/internal/repositories"
	"rideapp/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// AuthService owns credential checks for shift-manager accounts.
type AuthService struct {
	Users     repositories.UserRepository
	Catalog   repositories.CatalogRepository
	RequestID string
}

// invalidCredentials is shared by the missing-account and wrong-password
// paths so responses cannot be used to enumerate accounts.
func invalidCredentials() error {
	return domain.UnauthorizedError{Msg: "invalid email or password"}
}

// Authenticate verifies the password and returns the account merged
// with its linked event.
func (s AuthService) Authenticate(email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return models.User{}, invalidCredentials()
	}

	user, hash, err := s.Users.GetByEmail(email)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.User{}, invalidCredentials()
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return models.User{}, invalidCredentials()
	}

	if user.EventID != 0 {
		if event, err := s.Catalog.GetEventByID(user.EventID); err == nil {
			user.Event = &event
		} else {
			log.Printf("[AUTH] linked event %d not loaded for user %d: %v", user.EventID, user.ID, err)
		}
	}

	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d", user.ID))
	return user, nil
}

// RegisterInput carries the sign-up fields.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	EventID  int64  `json:"eventId"`
	Password string `json:"password"`
}

// Register creates a shift-manager account with a salted bcrypt hash.
func (s AuthService) Register(in RegisterInput) (models.User, error) {
	var fields []string
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, "name")
	}
	if strings.TrimSpace(in.Email) == "" {
		fields = append(fields, "email")
	}
	if len(in.Password) < 6 {
		fields = append(fields, "password")
	}
	if len(fields) > 0 {
		return models.User{}, domain.ValidationError{Fields: fields}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:   strings.TrimSpace(in.Phone),
		EventID: in.EventID,
	}
	id, err := s.Users.Create(user, string(hash))
	if err != nil {
		return models.User{}, err
	}
	user.ID = id

	utils.LogEvent(s.RequestID, "auth", "register", fmt.Sprintf("user_id=%d", id))
	return user, nil
}
