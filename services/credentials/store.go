package credentials

import (
	"errors"
	"log"

	models "Setler/models/postgres"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Store is the PostgreSQL-backed credential store. It implements the
// directory's CredentialStore interface: both calls return (ok, reason)
// and never touch live session state.
type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// RegisterUser creates an account with a bcrypt password hash. Duplicate
// usernames are rejected with a reason, not an error.
func (s *Store) RegisterUser(username, password string) (bool, string) {
	var existing models.User
	err := s.DB.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return false, "username already taken"
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[CREDENTIALS-ERROR] lookup for %s failed: %v", username, err)
		return false, "database error"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[CREDENTIALS-ERROR] hashing password for %s failed: %v", username, err)
		return false, "could not process password"
	}
	user := models.User{Username: username, PasswordHash: string(hash)}
	if err := s.DB.Create(&user).Error; err != nil {
		log.Printf("[CREDENTIALS-ERROR] creating user %s failed: %v", username, err)
		return false, "could not create user"
	}
	return true, ""
}

// AuthenticateUser checks a username/password pair. The reason never
// distinguishes a missing account from a wrong password.
func (s *Store) AuthenticateUser(username, password string) (bool, string) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return false, "invalid username or password"
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return false, "invalid username or password"
	}
	return true, ""
}
