package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-management-api/internal/logger"
	"clinic-management-api/internal/model"
	"clinic-management-api/internal/storage"
	"clinic-management-api/internal/store"
)

func newGate(t *testing.T) (*Gate, *store.Store) {
	t.Helper()
	st := store.New(storage.NewMemoryStore(), logger.New("error"))
	g, err := NewGate(st, logger.New("error"))
	require.NoError(t, err)
	return g, st
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("patient123")
	require.NoError(t, err)
	assert.NotEqual(t, "patient123", hash)
	assert.True(t, CheckPassword(hash, "patient123"))
	assert.False(t, CheckPassword(hash, "patient124"))
}

func TestGenerateTempPassword(t *testing.T) {
	a, err := GenerateTempPassword()
	require.NoError(t, err)
	b, err := GenerateTempPassword()
	require.NoError(t, err)

	assert.Len(t, a, 12)
	assert.NotEqual(t, a, b)
}

func TestTokenRoundTrip(t *testing.T) {
	id := model.Identity{ID: "2", Role: model.RolePatient, Email: "john@entnt.in", PatientID: "p1"}
	tok, err := MakeToken(id, "secret")
	require.NoError(t, err)

	claims, err := ParseToken(tok, "secret")
	require.NoError(t, err)
	assert.Equal(t, id, claims.Identity())

	_, err = ParseToken(tok, "other-secret")
	assert.Error(t, err)
}

func TestAuthenticateSeeds(t *testing.T) {
	g, _ := newGate(t)
	ctx := context.Background()

	admin, err := g.Authenticate(ctx, "admin@entnt.in", "admin123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)

	patient, err := g.Authenticate(ctx, "john@entnt.in", "patient123")
	require.NoError(t, err)
	assert.Equal(t, model.RolePatient, patient.Role)
	assert.Equal(t, "p1", patient.PatientID)
}

func TestAuthenticateStoredCredentialWinsOverSeed(t *testing.T) {
	g, st := newGate(t)
	ctx := context.Background()

	hash, err := HashPassword("changed-it")
	require.NoError(t, err)
	require.NoError(t, st.AppendCredential(ctx, model.Credential{
		ID: "c1", Role: model.RolePatient, Email: "john@entnt.in", Password: hash, PatientID: "p9",
	}))

	id, err := g.Authenticate(ctx, "john@entnt.in", "changed-it")
	require.NoError(t, err)
	assert.Equal(t, "p9", id.PatientID)
}

func TestAuthenticateGenericFailure(t *testing.T) {
	g, st := newGate(t)
	ctx := context.Background()

	_, errEmail := g.Authenticate(ctx, "nobody@entnt.in", "admin123")
	_, errPassword := g.Authenticate(ctx, "admin@entnt.in", "nope")

	assert.ErrorIs(t, errEmail, ErrInvalidCredentials)
	assert.ErrorIs(t, errPassword, ErrInvalidCredentials)
	assert.Equal(t, errEmail.Error(), errPassword.Error())

	// a failed login never persists a session
	_, ok := st.Identity(ctx)
	assert.False(t, ok)
}

func TestLogoutClearsSession(t *testing.T) {
	g, st := newGate(t)
	ctx := context.Background()

	_, err := g.Authenticate(ctx, "admin@entnt.in", "admin123")
	require.NoError(t, err)
	_, ok := st.Identity(ctx)
	require.True(t, ok)

	require.NoError(t, g.Logout(ctx))
	_, ok = st.Identity(ctx)
	assert.False(t, ok)

	require.NoError(t, g.Logout(ctx))
}
