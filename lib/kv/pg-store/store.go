package kvpgstore

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"job-requisition-backend/lib/kv"
	dbmodels "job-requisition-backend/models/db"
)

// NewInstance хранилище в таблице kv_records.
// Для распознавания конфликта вставки gorm должен быть открыт с TranslateError.
func NewInstance(DB *gorm.DB) kv.Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Get(ctx context.Context, key string) (*kv.Record, error) {
	rec := dbmodels.KVRecord{}
	err := i.db.WithContext(ctx).
		Where("key = ?", key).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &kv.Record{
		Value:    rec.Value,
		Revision: rec.Revision,
	}, nil
}

func (i impl) Put(ctx context.Context, key string, value []byte, expectedRevision string) (string, error) {
	revision := kv.NewRevision()
	switch expectedRevision {
	case kv.AnyRevision:
		rec := dbmodels.KVRecord{
			Key:      key,
			Value:    value,
			Revision: revision,
		}
		err := i.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "revision", "updated_at"}),
			}).
			Create(&rec).
			Error
		if err != nil {
			return "", err
		}
	case "":
		rec := dbmodels.KVRecord{
			Key:      key,
			Value:    value,
			Revision: revision,
		}
		err := i.db.WithContext(ctx).
			Create(&rec).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return "", kv.ErrRevisionConflict
			}
			return "", err
		}
	default:
		tx := i.db.WithContext(ctx).
			Model(&dbmodels.KVRecord{}).
			Where("key = ?", key).
			Where("revision = ?", expectedRevision).
			Updates(map[string]interface{}{
				"value":    value,
				"revision": revision,
			})
		if err := tx.Error; err != nil {
			return "", err
		}
		if tx.RowsAffected == 0 {
			return "", kv.ErrRevisionConflict
		}
	}
	return revision, nil
}
