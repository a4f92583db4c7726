package wallets

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

func (s *GormStore) Wallet(id uuid.UUID) (w Wallet, err error) {
	err = s.db.First(&w, "id = ?", id).Error
	return
}

func (s *GormStore) OwnerWallets(ownerID uuid.UUID) (ww []Wallet, err error) {
	err = s.db.
		Where("owner_id = ?", ownerID).
		Order("created_at asc").
		Find(&ww).Error
	return
}

func (s *GormStore) InsertWallet(w *Wallet) error {
	return s.db.Create(w).Error
}
