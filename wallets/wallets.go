// Package wallets provides storage for the monetary account addresses owned
// by users.
package wallets

import (
	"time"

	"github.com/google/uuid"
)

// Wallet represents a storable wallet address.
type Wallet struct {
	ID        uuid.UUID `json:"id" gorm:"column:id;primaryKey;type:uuid;"`
	OwnerID   uuid.UUID `json:"-" gorm:"column:owner_id;type:uuid;not null;index"`
	Address   string    `json:"address" gorm:"column:address;not null"`
	Type      Type      `json:"type" gorm:"column:type;not null"`
	ObjectID  string    `json:"objectId" gorm:"column:object_id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// New returns a complete wallet record.
// The identifier is assigned here and mirrored into ObjectID in one shot,
// instead of being copied in a save hook.
func New(ownerID uuid.UUID, address string, walletType Type) *Wallet {
	id := uuid.New()
	return &Wallet{
		ID:       id,
		OwnerID:  ownerID,
		Address:  address,
		Type:     walletType,
		ObjectID: id.String(),
	}
}
