package kv

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// AnyRevision запись без проверки ревизии
const AnyRevision = "*"

var (
	// ErrRevisionConflict значение изменено с момента чтения
	ErrRevisionConflict = errors.New("значение изменено другим процессом")
	// ErrCorrupt хранимое значение не удалось прочитать
	ErrCorrupt = errors.New("хранимое значение повреждено")
)

type Record struct {
	Value    []byte
	Revision string
}

// Provider хранилище ключ-значение с compare-and-swap по ревизии.
// Get возвращает nil, nil если ключ отсутствует.
// Put с expectedRevision == "" создает ключ только если его нет,
// с AnyRevision перезаписывает без проверки.
type Provider interface {
	Get(ctx context.Context, key string) (*Record, error)
	Put(ctx context.Context, key string, value []byte, expectedRevision string) (revision string, err error)
}

func NewRevision() string {
	return uuid.NewString()
}
