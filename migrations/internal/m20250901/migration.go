package m20250901

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//
// This is the first migration that initializes the whole DB. All types are
// snapshot here so that the structure and schema state for given point in
// time is preserved and can be rolled back to from later migrations, in case
// there's a need.
//

const ID = "20250901"

type User struct {
	ID                uuid.UUID  `gorm:"column:id;primaryKey;type:uuid;"`
	Name              string     `gorm:"column:name;not null"`
	Email             string     `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash      string     `gorm:"column:password_hash;not null"`
	IsConfirmed       bool       `gorm:"column:is_confirmed;not null;default:false"`
	IsAdmin           bool       `gorm:"column:is_admin;not null;default:false"`
	InvestingWalletID *uuid.UUID `gorm:"column:investing_wallet_id;type:uuid"`
	PersonalWalletID  *uuid.UUID `gorm:"column:personal_wallet_id;type:uuid"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (User) TableName() string {
	return "users"
}

type Wallet struct {
	ID        uuid.UUID `gorm:"column:id;primaryKey;type:uuid;"`
	OwnerID   uuid.UUID `gorm:"column:owner_id;type:uuid;not null;index"`
	Address   string    `gorm:"column:address;not null"`
	Type      int       `gorm:"column:type;not null"`
	ObjectID  string    `gorm:"column:object_id"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Wallet) TableName() string {
	return "wallets"
}

type Check struct {
	ID        uuid.UUID `gorm:"column:id;primaryKey;type:uuid;"`
	Code      string    `gorm:"column:code;uniqueIndex;not null"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Type      int       `gorm:"column:type;not null"`
	CreatedAt time.Time
}

func (Check) TableName() string {
	return "checks"
}

type Token struct {
	ID        uuid.UUID `gorm:"column:id;primaryKey;type:uuid;"`
	Code      string    `gorm:"column:code;uniqueIndex;not null"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	CreatedAt time.Time
}

func (Token) TableName() string {
	return "tokens"
}

type Client struct {
	ID        uuid.UUID `gorm:"column:id;primaryKey;type:uuid;"`
	Secret    string    `gorm:"column:secret;not null"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Client) TableName() string {
	return "clients"
}

type IdempotencyKey struct {
	Key        string    `gorm:"column:key;primary_key"`
	ExpiryDate time.Time `gorm:"column:expiry_date"`
}

func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

func Migrate(tx *gorm.DB) error {
	return tx.AutoMigrate(
		&User{},
		&Wallet{},
		&Check{},
		&Token{},
		&Client{},
		&IdempotencyKey{},
	)
}

func Rollback(tx *gorm.DB) error {
	return tx.Migrator().DropTable(
		&User{},
		&Wallet{},
		&Check{},
		&Token{},
		&Client{},
		&IdempotencyKey{},
	)
}
