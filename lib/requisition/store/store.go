package requisitionstore

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"job-requisition-backend/lib/kv"
	"job-requisition-backend/models"
)

const (
	DefaultKey = "jobRequisitions"
	// SchemaVersion текущая версия формата хранения, 0 - массив без обертки
	SchemaVersion = 1
)

type Provider interface {
	// LoadAll коллекция заявок, при первом обращении заполняется примерами
	LoadAll(ctx context.Context) ([]models.JobRequisition, error)
	// SaveAll полная замена коллекции без проверки ревизии
	SaveAll(ctx context.Context, list []models.JobRequisition) error
	Load(ctx context.Context) (Snapshot, error)
	// Save запись снимка, kv.ErrRevisionConflict если коллекцию изменили после Load
	Save(ctx context.Context, snapshot Snapshot) (Snapshot, error)
}

// Snapshot коллекция заявок и ревизия, с которой она прочитана
type Snapshot struct {
	Items    []models.JobRequisition
	Revision string
}

type envelope struct {
	SchemaVersion int                     `json:"schema_version"`
	Requisitions  []models.JobRequisition `json:"requisitions"`
}

type Option func(*impl)

// WithSeed коллекция, которой заполняется пустое хранилище
func WithSeed(seed []models.JobRequisition) Option {
	return func(i *impl) {
		i.seed = seed
	}
}

func NewInstance(backend kv.Provider, key string, opts ...Option) Provider {
	if key == "" {
		key = DefaultKey
	}
	i := &impl{
		backend: backend,
		key:     key,
		seed:    SampleRequisitions(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

type impl struct {
	backend kv.Provider
	key     string
	seed    []models.JobRequisition
}

func (i *impl) logger() *log.Entry {
	return log.WithField("storage_key", i.key)
}

func (i *impl) LoadAll(ctx context.Context) ([]models.JobRequisition, error) {
	snapshot, err := i.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Items, nil
}

func (i *impl) SaveAll(ctx context.Context, list []models.JobRequisition) error {
	_, err := i.Save(ctx, Snapshot{Items: list, Revision: kv.AnyRevision})
	return err
}

func (i *impl) Load(ctx context.Context) (Snapshot, error) {
	logger := i.logger()
	rec, err := i.backend.Get(ctx, i.key)
	if err != nil {
		if !errors.Is(err, kv.ErrCorrupt) {
			logger.WithError(err).Error("ошибка чтения заявок из хранилища")
			return Snapshot{}, err
		}
		logger.WithError(err).Warn("хранилище заявок повреждено, заполняем примерами")
		return i.reseed(ctx, kv.AnyRevision)
	}
	if rec == nil {
		logger.Info("хранилище заявок пустое, заполняем примерами")
		return i.reseed(ctx, "")
	}
	items, err := decode(rec.Value)
	if err != nil {
		logger.WithError(err).Warn("не удалось разобрать заявки из хранилища, заполняем примерами")
		return i.reseed(ctx, rec.Revision)
	}
	return Snapshot{Items: items, Revision: rec.Revision}, nil
}

func (i *impl) Save(ctx context.Context, snapshot Snapshot) (Snapshot, error) {
	body, err := encode(snapshot.Items)
	if err != nil {
		return Snapshot{}, err
	}
	revision, err := i.backend.Put(ctx, i.key, body, snapshot.Revision)
	if err != nil {
		if !errors.Is(err, kv.ErrRevisionConflict) {
			i.logger().WithError(err).Error("ошибка сохранения заявок в хранилище")
		}
		return Snapshot{}, err
	}
	return Snapshot{Items: snapshot.Items, Revision: revision}, nil
}

func (i *impl) reseed(ctx context.Context, expectedRevision string) (Snapshot, error) {
	items := make([]models.JobRequisition, 0, len(i.seed))
	for _, rec := range i.seed {
		items = append(items, rec.Clone())
	}
	snapshot, err := i.Save(ctx, Snapshot{Items: items, Revision: expectedRevision})
	if err != nil {
		if errors.Is(err, kv.ErrRevisionConflict) {
			// хранилище заполнил другой процесс, читаем его данные
			return i.Load(ctx)
		}
		return Snapshot{}, err
	}
	return snapshot, nil
}

func encode(list []models.JobRequisition) ([]byte, error) {
	if list == nil {
		list = []models.JobRequisition{}
	}
	body, err := json.Marshal(envelope{
		SchemaVersion: SchemaVersion,
		Requisitions:  list,
	})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка сериализации заявок")
	}
	return body, nil
}

func decode(body []byte) ([]models.JobRequisition, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		legacyList := []legacyRequisition{}
		if err := json.Unmarshal(body, &legacyList); err != nil {
			return nil, errors.Wrap(err, "ошибка разбора заявок")
		}
		list := make([]models.JobRequisition, 0, len(legacyList))
		for _, item := range legacyList {
			rec, err := item.convert()
			if err != nil {
				return nil, err
			}
			list = append(list, rec)
		}
		return list, nil
	}
	data := envelope{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, errors.Wrap(err, "ошибка разбора заявок")
	}
	if data.SchemaVersion != SchemaVersion {
		return nil, errors.Errorf("неподдерживаемая версия формата заявок: %v", data.SchemaVersion)
	}
	if data.Requisitions == nil {
		return []models.JobRequisition{}, nil
	}
	return data.Requisitions, nil
}
