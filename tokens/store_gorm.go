package tokens

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

func (s *GormStore) Token(id uuid.UUID) (t Token, err error) {
	err = s.db.
		Preload("User").
		Preload("User.InvestingWallet").
		First(&t, "id = ?", id).Error
	return
}

func (s *GormStore) TokenByCode(code string) (t Token, err error) {
	err = s.db.
		Preload("User").
		Preload("User.InvestingWallet").
		First(&t, "code = ?", code).Error
	return
}

func (s *GormStore) InsertToken(t *Token) error {
	return s.db.Omit("User").Create(t).Error
}

func (s *GormStore) DeleteToken(t *Token) error {
	return s.db.Delete(t).Error
}
