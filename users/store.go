package users

import "github.com/google/uuid"

// Store manages data regarding users.
type Store interface {
	// Get user details.
	User(id uuid.UUID) (User, error)

	// Get user details by email.
	UserByEmail(email string) (User, error)

	// Insert a new user.
	InsertUser(u *User) error

	// Persist changes to an existing user.
	SaveUser(u *User) error
}
