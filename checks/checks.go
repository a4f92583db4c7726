// Package checks provides storage for single use verification codes.
// A check authorizes exactly one state change (account confirmation or
// password recovery) and is deleted when consumed.
package checks

import (
	"time"

	"github.com/google/uuid"
	"github.com/moneta-labs/security-api/users"
)

// Check represents a storable verification code.
type Check struct {
	ID        uuid.UUID   `json:"id" gorm:"column:id;primaryKey;type:uuid;"`
	Code      string      `json:"check" gorm:"column:code;uniqueIndex;not null"`
	UserID    uuid.UUID   `json:"-" gorm:"column:user_id;type:uuid;not null;index"`
	User      *users.User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Type      Type        `json:"type" gorm:"column:type;not null"`
	CreatedAt time.Time   `json:"createdAt"`
}

// New returns a check with a fresh random code.
func New(userID uuid.UUID, checkType Type) *Check {
	return &Check{
		ID:     uuid.New(),
		Code:   uuid.NewString(),
		UserID: userID,
		Type:   checkType,
	}
}
