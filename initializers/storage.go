package initializers

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"job-requisition-backend/config"
	"job-requisition-backend/db"
	"job-requisition-backend/lib/kv"
	kvfilestore "job-requisition-backend/lib/kv/file-store"
	kvmemorystore "job-requisition-backend/lib/kv/memory-store"
	kvpgstore "job-requisition-backend/lib/kv/pg-store"
	kvs3store "job-requisition-backend/lib/kv/s3-store"
	s3client "job-requisition-backend/s3"
)

// InitStorage хранилище ключ-значение по типу из конфигурации
func InitStorage(ctx context.Context, conf *config.Configuration) (kv.Provider, error) {
	logger := log.WithField("storage_driver", conf.Storage.Driver)
	switch conf.Storage.Driver {
	case config.StorageMemory:
		logger.Warn("заявки хранятся в памяти и будут потеряны при перезапуске")
		return kvmemorystore.NewInstance(), nil
	case config.StorageFile:
		logger.WithField("dir", conf.Storage.FileDir).Info("заявки хранятся в файлах")
		return kvfilestore.NewInstance(conf.Storage.FileDir)
	case config.StoragePostgres:
		err := db.Connect(db.Config{
			Host:      conf.Database.Host,
			Port:      conf.Database.Port,
			Name:      conf.Database.Name,
			User:      conf.Database.User,
			Password:  conf.Database.Password,
			DebugMode: *conf.Database.DebugMode,
			Migrate:   *conf.Database.MigrateOnStart,
		})
		if err != nil {
			return nil, err
		}
		return kvpgstore.NewInstance(db.DB), nil
	case config.StorageS3:
		client, err := s3client.NewClient(s3client.Config{
			Endpoint:        conf.S3.Endpoint,
			AccessKeyID:     conf.S3.AccessKeyID,
			SecretAccessKey: conf.S3.SecretAccessKey,
			UseSSL:          *conf.S3.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		if err = s3client.MakeBucket(ctx, client, conf.S3.Bucket); err != nil {
			return nil, err
		}
		logger.WithField("bucket", conf.S3.Bucket).Info("S3 клиент успешно инициализирован")
		return kvs3store.NewInstance(client, conf.S3.Bucket, conf.S3.Prefix), nil
	}
	return nil, errors.Errorf("неизвестный тип хранилища: %q", conf.Storage.Driver)
}
