package store

import (
	"context"

	"clinic-management-api/internal/model"
	"clinic-management-api/internal/storage"
)

// Appointments loads the appointment collection. If the canonical key is
// empty but the legacy "incidents" key still holds data, the collection is
// migrated over first so every read path sees the same records.
func (s *Store) Appointments(ctx context.Context) []model.Appointment {
	if _, err := s.kv.Load(ctx, KeyAppointments); err == storage.ErrNotFound {
		s.migrateLegacyAppointments(ctx)
	}
	return loadList[model.Appointment](ctx, s, KeyAppointments)
}

func (s *Store) migrateLegacyAppointments(ctx context.Context) {
	raw, err := s.kv.Load(ctx, keyLegacyAppointments)
	if err != nil {
		return
	}
	log := s.log.WithComponent("store")
	if err := s.kv.Save(ctx, KeyAppointments, raw); err != nil {
		log.WithError(err).Warn("legacy appointment migration failed")
		return
	}
	if err := s.kv.Delete(ctx, keyLegacyAppointments); err != nil {
		log.WithError(err).Warn("could not remove legacy appointment key")
	}
	log.Info("migrated appointments from legacy key")
}

func (s *Store) AppointmentByID(ctx context.Context, id string) (*model.Appointment, bool) {
	for _, a := range s.Appointments(ctx) {
		if a.ID == id {
			return &a, true
		}
	}
	return nil, false
}

// AppointmentsByPatient returns the subset soft-referencing the patient id.
// Orphan references are tolerated, so this can return records for a patient
// that no longer exists.
func (s *Store) AppointmentsByPatient(ctx context.Context, patientID string) []model.Appointment {
	var out []model.Appointment
	for _, a := range s.Appointments(ctx) {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out
}

func (s *Store) CreateAppointment(ctx context.Context, a model.Appointment) error {
	appts := append(s.Appointments(ctx), a)
	return saveList(ctx, s, KeyAppointments, appts)
}

func (s *Store) UpdateAppointment(ctx context.Context, a model.Appointment) (bool, error) {
	appts := s.Appointments(ctx)
	for i := range appts {
		if appts[i].ID == a.ID {
			appts[i] = a
			return true, saveList(ctx, s, KeyAppointments, appts)
		}
	}
	return false, nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	appts := s.Appointments(ctx)
	kept := appts[:0]
	for _, a := range appts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(appts) {
		return nil
	}
	return saveList(ctx, s, KeyAppointments, kept)
}
