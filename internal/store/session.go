package store

import (
	"context"
	"encoding/json"
	"fmt"

	"clinic-management-api/internal/model"
)

// The session is a single identity record under its own key, mirroring the
// in-process login state so it survives a restart.

func (s *Store) Identity(ctx context.Context) (*model.Identity, bool) {
	raw, err := s.kv.Load(ctx, KeySession)
	if err != nil {
		return nil, false
	}
	var id model.Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		s.log.WithComponent("store").WithError(err).Warn("malformed session record, treating as logged out")
		return nil, false
	}
	return &id, true
}

func (s *Store) SaveIdentity(ctx context.Context, id model.Identity) error {
	raw, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.Save(ctx, KeySession, raw); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// ClearIdentity logs the session out. Clearing an absent session succeeds.
func (s *Store) ClearIdentity(ctx context.Context) error {
	return s.kv.Delete(ctx, KeySession)
}
