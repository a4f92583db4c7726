// Package clients provides storage for registered API clients. A client can
// exchange its id and secret for a token on behalf of its owning user.
package clients

import (
	"time"

	"github.com/google/uuid"
	"github.com/moneta-labs/security-api/users"
)

// Client represents a storable client credential.
type Client struct {
	ID        uuid.UUID   `json:"id" gorm:"column:id;primaryKey;type:uuid;"`
	Secret    string      `json:"-" gorm:"column:secret;not null"`
	UserID    uuid.UUID   `json:"-" gorm:"column:user_id;type:uuid;not null;index"`
	User      *users.User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"-"`
}

// New returns a client with a fresh random secret owned by the given user.
func New(userID uuid.UUID) *Client {
	return &Client{
		ID:     uuid.New(),
		Secret: uuid.NewString(),
		UserID: userID,
	}
}
