package checks

import (
	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db}
}

func (s *GormStore) Check(code string, checkType Type) (c Check, err error) {
	err = s.db.
		Preload("User").
		First(&c, "code = ? AND type = ?", code, checkType).Error
	return
}

// InsertCheck removes stale checks of the same (user, type) pair before
// inserting, so at most one check per pair is ever valid.
func (s *GormStore) InsertCheck(c *Check) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ? AND type = ?", c.UserID, c.Type).
			Delete(&Check{}).Error; err != nil {
			return err
		}
		return tx.Omit("User").Create(c).Error
	})
}

func (s *GormStore) DeleteCheck(c *Check) error {
	return s.db.Delete(c).Error
}
