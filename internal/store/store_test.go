package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-management-api/internal/logger"
	"clinic-management-api/internal/model"
	"clinic-management-api/internal/storage"
)

func newTestStore() (*Store, storage.Store) {
	kv := storage.NewMemoryStore()
	return New(kv, logger.New("error")), kv
}

func TestMalformedCollectionDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore()

	require.NoError(t, kv.Save(ctx, KeyPatients, []byte(`{"not":"an array"`)))

	assert.Empty(t, s.Patients(ctx))

	// and the collection is usable again after the next write
	require.NoError(t, s.CreatePatient(ctx, model.Patient{ID: "p1", Name: "Jane"}))
	assert.Len(t, s.Patients(ctx), 1)
}

func TestLegacyAppointmentKeyMigration(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore()

	legacy := []byte(`[{"id":"a1","patientId":"p1","title":"Checkup","appointmentDate":"2026-10-01T10:30:00Z","status":"Scheduled","cost":50,"description":"","treatment":"","nextDate":null,"files":[]}]`)
	require.NoError(t, kv.Save(ctx, "incidents", legacy))

	appts := s.Appointments(ctx)
	require.Len(t, appts, 1)
	assert.Equal(t, "a1", appts[0].ID)

	// migrated under the canonical key, legacy key gone
	_, err := kv.Load(ctx, KeyAppointments)
	assert.NoError(t, err)
	_, err = kv.Load(ctx, "incidents")
	assert.Equal(t, storage.ErrNotFound, err)
}

func TestLegacyKeyIgnoredWhenCanonicalExists(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore()

	require.NoError(t, kv.Save(ctx, KeyAppointments, []byte(`[]`)))
	require.NoError(t, kv.Save(ctx, "incidents", []byte(`[{"id":"stale"}]`)))

	assert.Empty(t, s.Appointments(ctx))
}

func TestPatientUpdateUnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	require.NoError(t, s.CreatePatient(ctx, model.Patient{ID: "p1", Name: "Jane"}))

	changed, err := s.UpdatePatient(ctx, model.Patient{ID: "ghost", Name: "Nobody"})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Len(t, s.Patients(ctx), 1)
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	require.NoError(t, s.CreatePatient(ctx, model.Patient{ID: "p1"}))
	require.NoError(t, s.CreatePatient(ctx, model.Patient{ID: "p2"}))

	require.NoError(t, s.DeletePatient(ctx, "p1"))
	require.NoError(t, s.DeletePatient(ctx, "p1"))

	patients := s.Patients(ctx)
	require.Len(t, patients, 1)
	assert.Equal(t, "p2", patients[0].ID)
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	_, ok := s.Identity(ctx)
	assert.False(t, ok)

	id := model.Identity{ID: "2", Role: model.RolePatient, Email: "john@entnt.in", PatientID: "p1"}
	require.NoError(t, s.SaveIdentity(ctx, id))

	got, ok := s.Identity(ctx)
	require.True(t, ok)
	assert.Equal(t, id, *got)

	require.NoError(t, s.ClearIdentity(ctx))
	_, ok = s.Identity(ctx)
	assert.False(t, ok)

	// clearing twice is fine
	require.NoError(t, s.ClearIdentity(ctx))
}

func TestCredentialLookup(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	c := model.Credential{ID: "c1", Role: model.RolePatient, Email: "jane@x.com", Password: "hash", PatientID: "p1"}
	require.NoError(t, s.AppendCredential(ctx, c))

	got, ok := s.CredentialByEmail(ctx, "jane@x.com")
	require.True(t, ok)
	assert.Equal(t, c, *got)

	_, ok = s.CredentialByEmail(ctx, "nobody@x.com")
	assert.False(t, ok)
}
