package entities

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ResetTokenTTL is how long a password-reset token stays usable.
const ResetTokenTTL = time.Hour

type User struct {
	Id               uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Name             string
	Email            string
	Password         string
	ResetToken       *string
	ResetTokenExpiry *time.Time
}

func NewUser(name, email, password string) *User {
	return &User{
		Id:        uuid.New(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Name:      name,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Password:  password,
	}
}

func (u *User) validate() error {
	if u.Name == "" {
		return errors.New("name must not be empty")
	}
	if u.Email == "" {
		return errors.New("email must not be empty")
	}
	if !strings.Contains(u.Email, "@") {
		return errors.New("email must be a valid address")
	}
	if len(u.Password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}

// HashPassword replaces the plaintext password with its bcrypt hash.
func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

// IssueResetToken generates a new password-reset token valid for ResetTokenTTL
// and returns it.
func (u *User) IssueResetToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)
	expiry := time.Now().Add(ResetTokenTTL)
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	return token, nil
}

func (u *User) ResetTokenValid(now time.Time) bool {
	return u.ResetToken != nil && u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(now)
}

func (u *User) ClearResetToken() {
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
}
