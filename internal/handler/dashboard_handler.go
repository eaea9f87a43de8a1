package handler

import (
	"net/http"
	"time"

	"clinic-management-api/internal/middleware"
	"clinic-management-api/internal/model"
	"clinic-management-api/internal/report"
)

type adminDashboard struct {
	Summary  report.Summary      `json:"summary"`
	Upcoming []model.Appointment `json:"upcoming"`
}

// AdminDashboard reports clinic-wide counters and the next ten appointments.
func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	patients := h.store.Patients(r.Context())
	appts := h.store.Appointments(r.Context())

	upcoming := report.Limit(report.Upcoming(appts, time.Now()), 10)
	if upcoming == nil {
		upcoming = []model.Appointment{}
	}
	writeJSON(w, http.StatusOK, adminDashboard{
		Summary:  report.Summarize(patients, appts),
		Upcoming: upcoming,
	})
}

type patientDashboard struct {
	Patient  *model.Patient      `json:"patient"`
	Upcoming []model.Appointment `json:"upcoming"`
	Past     []model.Appointment `json:"past"`
}

// PatientDashboard shows the caller their own record and appointment split.
// The patient record can be missing when the login outlived a deletion; the
// view reports that instead of failing.
func (h *Handler) PatientDashboard(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())

	patient, _ := h.store.PatientByID(r.Context(), id.PatientID)
	mine := h.store.AppointmentsByPatient(r.Context(), id.PatientID)

	now := time.Now()
	upcoming := report.Upcoming(mine, now)
	past := report.Past(mine, now)
	if upcoming == nil {
		upcoming = []model.Appointment{}
	}
	if past == nil {
		past = []model.Appointment{}
	}
	writeJSON(w, http.StatusOK, patientDashboard{
		Patient:  patient,
		Upcoming: upcoming,
		Past:     past,
	})
}
