package store

import (
	"context"

	"clinic-management-api/internal/model"
)

func (s *Store) Credentials(ctx context.Context) []model.Credential {
	return loadList[model.Credential](ctx, s, KeyUsers)
}

func (s *Store) CredentialByEmail(ctx context.Context, email string) (*model.Credential, bool) {
	for _, c := range s.Credentials(ctx) {
		if c.Email == email {
			return &c, true
		}
	}
	return nil, false
}

func (s *Store) AppendCredential(ctx context.Context, c model.Credential) error {
	creds := append(s.Credentials(ctx), c)
	return saveList(ctx, s, KeyUsers, creds)
}
