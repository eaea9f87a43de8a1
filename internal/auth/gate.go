package auth

import (
	"context"
	"errors"
	"fmt"

	"clinic-management-api/internal/logger"
	"clinic-management-api/internal/model"
	"clinic-management-api/internal/store"
)

// ErrInvalidCredentials is the only failure surfaced to callers of
// Authenticate. Wrong email and wrong password are indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

type seed struct {
	cred model.Credential
	hash string
}

// Gate authenticates submitted credentials against the stored user records,
// falling back to two fixed seed accounts that exist before any real ones do.
// A successful login is mirrored into the session key.
type Gate struct {
	store *store.Store
	log   *logger.Logger
	seeds []seed
}

func NewGate(st *store.Store, log *logger.Logger) (*Gate, error) {
	seedAccounts := []struct {
		cred     model.Credential
		password string
	}{
		{model.Credential{ID: "1", Role: model.RoleAdmin, Email: "admin@entnt.in"}, "admin123"},
		{model.Credential{ID: "2", Role: model.RolePatient, Email: "john@entnt.in", PatientID: "p1"}, "patient123"},
	}

	g := &Gate{store: st, log: log}
	for _, sa := range seedAccounts {
		hash, err := HashPassword(sa.password)
		if err != nil {
			return nil, fmt.Errorf("seed account: %w", err)
		}
		g.seeds = append(g.seeds, seed{cred: sa.cred, hash: hash})
	}
	return g, nil
}

// Authenticate checks stored credentials first, then the seed accounts. On
// success the identity is persisted so it survives a restart.
func (g *Gate) Authenticate(ctx context.Context, email, password string) (*model.Identity, error) {
	log := g.log.WithComponent("auth")

	var matched *model.Credential
	if c, ok := g.store.CredentialByEmail(ctx, email); ok && CheckPassword(c.Password, password) {
		matched = c
	}
	if matched == nil {
		for _, s := range g.seeds {
			if s.cred.Email == email && CheckPassword(s.hash, password) {
				c := s.cred
				matched = &c
				break
			}
		}
	}
	if matched == nil {
		g.log.Audit(email, "login", "session", false)
		return nil, ErrInvalidCredentials
	}

	id := matched.Identity()
	if err := g.store.SaveIdentity(ctx, id); err != nil {
		log.WithError(err).Error("persisting session failed")
		return nil, fmt.Errorf("persist session: %w", err)
	}
	g.log.Audit(id.ID, "login", "session", true)
	return &id, nil
}

// Logout clears the persisted session. It succeeds even when nobody is
// logged in.
func (g *Gate) Logout(ctx context.Context) error {
	if err := g.store.ClearIdentity(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	g.log.Audit("", "logout", "session", true)
	return nil
}
