package clients

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

func (s *GormStore) ClientBySecret(id uuid.UUID, secret string) (c Client, err error) {
	err = s.db.
		Preload("User").
		First(&c, "id = ? AND secret = ?", id, secret).Error
	return
}

func (s *GormStore) InsertClient(c *Client) error {
	return s.db.Omit("User").Create(c).Error
}
