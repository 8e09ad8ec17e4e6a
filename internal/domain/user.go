package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Roles a user can hold
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultMinPasswordLength applies when the caller passes a non-positive minimum
const DefaultMinPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// User owns exactly one wallet and the events it created
type User struct {
	ID           uint
	Email        string
	PasswordHash string
	Role         string
	Wallet       *Wallet
	Events       []*Event
}

// NewUser validates the credentials, hashes the password with bcrypt and opens a wallet
// with the given balance.
func NewUser(id uint, email, password string, minPasswordLength int, opening decimal.Decimal) (*User, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password, minPasswordLength); err != nil {
		return nil, err
	}
	wallet, err := NewWallet(opening)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:           id,
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		Role:         RoleUser,
		Wallet:       wallet,
	}, nil
}

// ValidateEmail checks the address shape
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return newValidationError("email", "invalid email format")
	}
	return nil
}

// ValidatePassword enforces the minimum length
func ValidatePassword(password string, minLength int) error {
	if minLength <= 0 {
		minLength = DefaultMinPasswordLength
	}
	if len(password) < minLength {
		return newValidationError("password", "password is too short")
	}
	return nil
}

// CheckPassword compares password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// AddEvent appends an event created by the user
func (u *User) AddEvent(e *Event) {
	u.Events = append(u.Events, e)
}
