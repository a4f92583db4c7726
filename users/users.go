// Package users provides storage for user identities.
package users

import (
	"time"

	"github.com/google/uuid"
	"github.com/moneta-labs/security-api/wallets"
	"golang.org/x/crypto/bcrypt"
)

// User represents a storable user identity. The password is stored only as a
// bcrypt hash; see SetPassword and ComparePassword.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"column:id;primaryKey;type:uuid;"`
	Name         string    `json:"name" gorm:"column:name;not null"`
	Email        string    `json:"email" gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	IsConfirmed  bool      `json:"isConfirmed" gorm:"column:is_confirmed;not null;default:false"`
	IsAdmin      bool      `json:"isAdmin" gorm:"column:is_admin;not null;default:false"`

	InvestingWalletID *uuid.UUID      `json:"-" gorm:"column:investing_wallet_id;type:uuid"`
	InvestingWallet   *wallets.Wallet `json:"investingWallet,omitempty" gorm:"foreignKey:InvestingWalletID"`
	PersonalWalletID  *uuid.UUID      `json:"-" gorm:"column:personal_wallet_id;type:uuid"`
	PersonalWallet    *wallets.Wallet `json:"personalWallet,omitempty" gorm:"foreignKey:PersonalWalletID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New returns an unconfirmed user with the given password hashed.
func New(name, email, password string) (*User, error) {
	u := &User{
		ID:          uuid.New(),
		Name:        name,
		Email:       email,
		IsConfirmed: false,
	}

	if err := u.SetPassword(password); err != nil {
		return nil, err
	}

	return u, nil
}

// SetPassword replaces the stored password hash.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// ComparePassword reports whether the candidate matches the stored hash.
func (u *User) ComparePassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(candidate)) == nil
}
