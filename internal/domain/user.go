package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User owns notes and flashcards. Only the bootstrapped demo user exists
// until authentication is added.
type User struct {
	ID        uuid.UUID
	Username  string
	CreatedAt time.Time
}

// NewUser creates a new User with the given username.
func NewUser(username string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Username:  strings.TrimSpace(username),
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if u.Username == "" {
		return ErrEmptyUsername
	}
	return nil
}
