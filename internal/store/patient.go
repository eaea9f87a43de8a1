package store

import (
	"context"

	"clinic-management-api/internal/model"
)

func (s *Store) Patients(ctx context.Context) []model.Patient {
	return loadList[model.Patient](ctx, s, KeyPatients)
}

func (s *Store) PatientByID(ctx context.Context, id string) (*model.Patient, bool) {
	for _, p := range s.Patients(ctx) {
		if p.ID == id {
			return &p, true
		}
	}
	return nil, false
}

func (s *Store) CreatePatient(ctx context.Context, p model.Patient) error {
	patients := append(s.Patients(ctx), p)
	return saveList(ctx, s, KeyPatients, patients)
}

// UpdatePatient replaces the record matching p.ID. An unknown id is a no-op,
// reported through the bool so callers can distinguish it without failing.
func (s *Store) UpdatePatient(ctx context.Context, p model.Patient) (bool, error) {
	patients := s.Patients(ctx)
	for i := range patients {
		if patients[i].ID == p.ID {
			patients[i] = p
			return true, saveList(ctx, s, KeyPatients, patients)
		}
	}
	return false, nil
}

// DeletePatient removes the record by id. Deleting an absent id is a no-op.
// Appointments and credentials referencing the patient are left in place.
func (s *Store) DeletePatient(ctx context.Context, id string) error {
	patients := s.Patients(ctx)
	kept := patients[:0]
	for _, p := range patients {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(patients) {
		return nil
	}
	return saveList(ctx, s, KeyPatients, kept)
}
