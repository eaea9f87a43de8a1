package store

import (
	"context"
	"encoding/json"
	"fmt"

	"clinic-management-api/internal/logger"
	"clinic-management-api/internal/storage"
)

// Persisted collection keys. These names are part of the on-disk contract and
// must not change.
const (
	KeyPatients     = "patients"
	KeyAppointments = "appointments"
	KeyUsers        = "users"
	KeySession      = "user"

	// one historic write path used this key for appointments
	keyLegacyAppointments = "incidents"
)

// Store gives typed access to the JSON collections held in a key-value
// backend. Reads degrade to an empty collection on missing or malformed
// data; writes either persist the whole collection or leave the previous
// value untouched.
type Store struct {
	kv  storage.Store
	log *logger.Logger
}

func New(kv storage.Store, log *logger.Logger) *Store {
	return &Store{kv: kv, log: log}
}

func loadList[T any](ctx context.Context, s *Store, key string) []T {
	raw, err := s.kv.Load(ctx, key)
	if err != nil {
		if err != storage.ErrNotFound {
			s.log.WithComponent("store").WithError(err).Warnf("read %s failed, treating as empty", key)
		}
		return []T{}
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		s.log.WithComponent("store").WithError(err).Warnf("malformed %s collection, treating as empty", key)
		return []T{}
	}
	if out == nil {
		out = []T{}
	}
	return out
}

func saveList[T any](ctx context.Context, s *Store, key string, list []T) error {
	if list == nil {
		list = []T{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Save(ctx, key, raw); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}
