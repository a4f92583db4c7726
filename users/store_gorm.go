package users

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db}
}

func (s *GormStore) User(id uuid.UUID) (u User, err error) {
	err = s.db.
		Preload("InvestingWallet").
		Preload("PersonalWallet").
		First(&u, "id = ?", id).Error
	return
}

func (s *GormStore) UserByEmail(email string) (u User, err error) {
	err = s.db.
		Preload("InvestingWallet").
		Preload("PersonalWallet").
		First(&u, "email = ?", email).Error
	return
}

func (s *GormStore) InsertUser(u *User) error {
	return s.db.Omit("InvestingWallet", "PersonalWallet").Create(u).Error
}

func (s *GormStore) SaveUser(u *User) error {
	return s.db.Omit("InvestingWallet", "PersonalWallet").Save(u).Error
}
