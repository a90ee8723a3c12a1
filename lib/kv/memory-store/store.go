package kvmemorystore

import (
	"context"
	"sync"

	"job-requisition-backend/lib/kv"
)

// NewInstance хранилище в памяти процесса, для демо-режима и тестов
func NewInstance() *Store {
	return &Store{
		data: map[string]kv.Record{},
	}
}

type Store struct {
	mu   sync.Mutex
	data map[string]kv.Record
}

func (s *Store) Get(ctx context.Context, key string) (*kv.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return &kv.Record{
		Value:    append([]byte(nil), rec.Value...),
		Revision: rec.Revision,
	}, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte, expectedRevision string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if expectedRevision != kv.AnyRevision && s.data[key].Revision != expectedRevision {
		return "", kv.ErrRevisionConflict
	}
	revision := kv.NewRevision()
	s.data[key] = kv.Record{
		Value:    append([]byte(nil), value...),
		Revision: revision,
	}
	return revision, nil
}

// Raw сохраненное значение, nil если ключа нет
func (s *Store) Raw(key string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.data[key]
	if !ok {
		return nil
	}
	return append([]byte(nil), rec.Value...)
}

// SetRaw запись значения в обход проверки ревизии
func (s *Store) SetRaw(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = kv.Record{
		Value:    append([]byte(nil), value...),
		Revision: kv.NewRevision(),
	}
}
