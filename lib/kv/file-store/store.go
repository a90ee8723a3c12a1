package kvfilestore

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"job-requisition-backend/lib/kv"
)

var keyRe = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

type fileRecord struct {
	Revision  string          `json:"revision"`
	UpdatedAt time.Time       `json:"updated_at"`
	Value     json.RawMessage `json:"value"`
}

// NewInstance хранилище в каталоге dir, по файлу на ключ.
// Значения должны быть валидным json.
func NewInstance(dir string) (kv.Provider, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "ошибка создания каталога хранилища %s", dir)
	}
	return &impl{dir: dir}, nil
}

type impl struct {
	mu  sync.Mutex
	dir string
}

func (i *impl) Get(ctx context.Context, key string) (*kv.Record, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.read(key)
}

func (i *impl) Put(ctx context.Context, key string, value []byte, expectedRevision string) (string, error) {
	if !json.Valid(value) {
		return "", errors.New("значение должно быть валидным json")
	}
	i.mu.Lock()
	defer i.mu.Unlock()

	current, err := i.read(key)
	if err != nil && !errors.Is(err, kv.ErrCorrupt) {
		return "", err
	}
	if expectedRevision != kv.AnyRevision {
		currentRevision := ""
		if current != nil {
			currentRevision = current.Revision
		}
		if currentRevision != expectedRevision {
			return "", kv.ErrRevisionConflict
		}
	} else if current != nil && bytes.Equal(current.Value, compact(value)) {
		// значение не изменилось, файл не трогаем
		return current.Revision, nil
	}

	rec := fileRecord{
		Revision:  kv.NewRevision(),
		UpdatedAt: time.Now().UTC(),
		Value:     json.RawMessage(value),
	}
	body, err := json.Marshal(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка сериализации записи")
	}
	path, err := i.path(key)
	if err != nil {
		return "", err
	}
	if err = writeAtomic(path, body); err != nil {
		return "", err
	}
	log.WithField("storage_key", key).Debug("значение сохранено в файл")
	return rec.Revision, nil
}

func (i *impl) read(key string) (*kv.Record, error) {
	path, err := i.path(key)
	if err != nil {
		return nil, err
	}
	body, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "ошибка чтения файла %s", path)
	}
	rec := fileRecord{}
	if err = json.Unmarshal(body, &rec); err != nil || rec.Revision == "" {
		return nil, errors.Wrapf(kv.ErrCorrupt, "файл %s", path)
	}
	return &kv.Record{
		Value:    []byte(rec.Value),
		Revision: rec.Revision,
	}, nil
}

func (i *impl) path(key string) (string, error) {
	if !keyRe.MatchString(key) {
		return "", errors.Errorf("недопустимый ключ хранилища: %q", key)
	}
	return filepath.Join(i.dir, key+".json"), nil
}

// compact значение в том виде, в котором оно попадает в файл
func compact(value []byte) []byte {
	buf := bytes.Buffer{}
	if err := json.Compact(&buf, value); err != nil {
		return value
	}
	return buf.Bytes()
}

// writeAtomic запись через временный файл и rename, частичная запись не видна читателям
func writeAtomic(path string, body []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "ошибка создания временного файла")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err = tmp.Write(body); err != nil {
		tmp.Close()
		return errors.Wrap(err, "ошибка записи временного файла")
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "ошибка записи временного файла")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "ошибка закрытия временного файла")
	}
	if err = os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "ошибка замены файла %s", path)
	}
	return nil
}
