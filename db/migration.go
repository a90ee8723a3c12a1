package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "job-requisition-backend/models/db"
)

func AutoMigrateDB() error {
	log.Info("запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.KVRecord{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры KVRecord")
	}
	log.Info("миграция прошла успешно")
	return nil
}
