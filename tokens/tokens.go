// Package tokens provides storage for bearer credentials. A token stays
// valid until it is explicitly deleted on logout; there is no expiry.
package tokens

import (
	"time"

	"github.com/google/uuid"
	"github.com/moneta-labs/security-api/users"
)

// Token represents a storable bearer credential.
type Token struct {
	ID        uuid.UUID   `json:"id" gorm:"column:id;primaryKey;type:uuid;"`
	Code      string      `json:"token" gorm:"column:code;uniqueIndex;not null"`
	UserID    uuid.UUID   `json:"-" gorm:"column:user_id;type:uuid;not null;index"`
	User      *users.User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time   `json:"createdAt"`
}

// New returns a token with a fresh random code for the given user.
func New(userID uuid.UUID) *Token {
	return &Token{
		ID:     uuid.New(),
		Code:   uuid.NewString(),
		UserID: userID,
	}
}
