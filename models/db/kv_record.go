package dbmodels

import (
	"time"
)

// KVRecord значение хранилища под именованным ключом
type KVRecord struct {
	Key       string    `gorm:"primaryKey;type:varchar(255)"`
	Value     []byte    `gorm:"type:bytea"`
	Revision  string    `gorm:"type:varchar(36);not null"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}
