package tokens

import "github.com/google/uuid"

// Store manages data regarding tokens.
type Store interface {
	// Get a token by its identifier, with the user and the user's
	// investing wallet populated.
	Token(id uuid.UUID) (Token, error)

	// Get a token by its bearer code, with the user and the user's
	// investing wallet populated.
	TokenByCode(code string) (Token, error)

	// Insert a new token.
	InsertToken(t *Token) error

	// Permanently delete a token.
	DeleteToken(t *Token) error
}
