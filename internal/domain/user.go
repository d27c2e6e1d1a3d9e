package domain

import (
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errors for the user domain
var (
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrPasswordTooWeak = errors.New("password must be at least 6 characters")
	ErrInvalidRole     = errors.New("invalid user role")
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Role represents a user role
type Role string

const (
	RoleManager Role = "manager"
)

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	return r == RoleManager
}

// User represents an authenticated back-office user
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewUser creates a new user with an already-hashed password
func NewUser(email, passwordHash string, role Role) (*User, error) {
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if role == "" {
		role = RoleManager
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	now := time.Now().UTC()
	return &User{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ValidatePassword checks the plaintext password policy
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return ErrPasswordTooWeak
	}
	return nil
}
