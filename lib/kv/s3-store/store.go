package kvs3store

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"job-requisition-backend/lib/kv"
)

const revisionMetaKey = "revision"

// NewInstance хранилище в бакете S3, по объекту на ключ.
// Проверка ревизии выполняется перед записью и не атомарна,
// для нескольких реплик использовать postgres.
func NewInstance(client *minio.Client, bucket, prefix string) kv.Provider {
	return &impl{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

type impl struct {
	client *minio.Client
	bucket string
	prefix string
}

func (i impl) objectName(key string) string {
	return i.prefix + key + ".json"
}

func (i impl) Get(ctx context.Context, key string) (*kv.Record, error) {
	obj, err := i.client.GetObject(ctx, i.bucket, i.objectName(key), minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения объекта из S3")
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "ошибка получения объекта из S3")
	}
	body, err := io.ReadAll(obj)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения объекта из S3")
	}
	revision := getRevision(info.UserMetadata)
	if revision == "" {
		return nil, errors.Wrapf(kv.ErrCorrupt, "у объекта %s нет ревизии", i.objectName(key))
	}
	return &kv.Record{
		Value:    body,
		Revision: revision,
	}, nil
}

func (i impl) Put(ctx context.Context, key string, value []byte, expectedRevision string) (string, error) {
	logger := log.WithField("storage_key", key).
		WithField("bucket", i.bucket)
	if expectedRevision != kv.AnyRevision {
		currentRevision, err := i.currentRevision(ctx, key)
		if err != nil {
			return "", err
		}
		if currentRevision != expectedRevision {
			return "", kv.ErrRevisionConflict
		}
	}
	revision := kv.NewRevision()
	_, err := i.client.PutObject(ctx, i.bucket, i.objectName(key), bytes.NewReader(value), int64(len(value)), minio.PutObjectOptions{
		ContentType:  "application/json",
		UserMetadata: map[string]string{revisionMetaKey: revision},
	})
	if err != nil {
		logger.WithError(err).Error("ошибка записи объекта в S3")
		return "", errors.Wrap(err, "ошибка записи объекта в S3")
	}
	return revision, nil
}

func (i impl) currentRevision(ctx context.Context, key string) (string, error) {
	info, err := i.client.StatObject(ctx, i.bucket, i.objectName(key), minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return "", nil
		}
		return "", errors.Wrap(err, "ошибка получения объекта из S3")
	}
	return getRevision(info.UserMetadata), nil
}

func getRevision(meta map[string]string) string {
	for k, v := range meta {
		if strings.EqualFold(k, revisionMetaKey) || strings.EqualFold(k, "X-Amz-Meta-"+revisionMetaKey) {
			return v
		}
	}
	return ""
}

func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound"
}
