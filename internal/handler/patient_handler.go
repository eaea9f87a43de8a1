package handler

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"clinic-management-api/internal/auth"
	"clinic-management-api/internal/model"
)

// same patterns the intake form enforced
var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	contactPattern = regexp.MustCompile(`^\+?\(?[0-9]{3}\)?[-\s.]?[0-9]{3}[-\s.]?[0-9]{4,6}$`)
)

type patientRequest struct {
	Name       string `json:"name"`
	DOB        string `json:"dob"`
	Contact    string `json:"contact"`
	Email      string `json:"email"`
	HealthInfo string `json:"healthInfo"`
}

func validatePatient(req patientRequest) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "Name is required"
	}
	if req.DOB == "" {
		fields["dob"] = "Date of birth is required"
	}
	if strings.TrimSpace(req.Contact) == "" {
		fields["contact"] = "Contact information is required"
	} else if !contactPattern.MatchString(strings.TrimSpace(req.Contact)) {
		fields["contact"] = "Please enter a valid phone number"
	}
	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = "Email is required"
	} else if !emailPattern.MatchString(req.Email) {
		fields["email"] = "Please enter a valid email address"
	}
	return fields
}

func (h *Handler) ListPatients(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Patients(r.Context()))
}

func (h *Handler) GetPatient(w http.ResponseWriter, r *http.Request) {
	p, ok := h.store.PatientByID(r.Context(), mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type createPatientResponse struct {
	Patient     model.Patient `json:"patient"`
	Credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"credentials"`
}

// CreatePatient stores the record and issues a paired login. The temporary
// password appears in this response and nowhere else; only its hash is kept.
func (h *Handler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req patientRequest
	if !readJSON(w, r, &req) {
		return
	}
	if fields := validatePatient(req); len(fields) > 0 {
		writeFieldErrors(w, fields)
		return
	}

	p := model.Patient{
		ID:         uuid.New().String(),
		Name:       req.Name,
		DOB:        req.DOB,
		Contact:    req.Contact,
		Email:      req.Email,
		HealthInfo: req.HealthInfo,
	}

	tempPassword, err := auth.GenerateTempPassword()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	hash, err := auth.HashPassword(tempPassword)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.store.CreatePatient(r.Context(), p); err != nil {
		h.log.WithComponent("patients").WithError(err).Error("create failed")
		writeError(w, http.StatusInternalServerError, "could not save patient")
		return
	}
	cred := model.Credential{
		ID:        uuid.New().String(),
		Role:      model.RolePatient,
		Email:     p.Email,
		Password:  hash,
		PatientID: p.ID,
	}
	if err := h.store.AppendCredential(r.Context(), cred); err != nil {
		h.log.WithComponent("patients").WithError(err).Error("credential append failed")
		writeError(w, http.StatusInternalServerError, "could not save patient login")
		return
	}

	resp := createPatientResponse{Patient: p}
	resp.Credentials.Email = p.Email
	resp.Credentials.Password = tempPassword
	writeJSON(w, http.StatusCreated, resp)
}

// UpdatePatient merges the submitted fields into the stored record. An
// unknown id leaves the collection untouched.
func (h *Handler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	var req patientRequest
	if !readJSON(w, r, &req) {
		return
	}

	existing, ok := h.store.PatientByID(r.Context(), mux.Vars(r)["id"])
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	fields := map[string]string{}
	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.DOB != "" {
		existing.DOB = req.DOB
	}
	if req.Contact != "" {
		if !contactPattern.MatchString(strings.TrimSpace(req.Contact)) {
			fields["contact"] = "Please enter a valid phone number"
		}
		existing.Contact = req.Contact
	}
	if req.Email != "" {
		if !emailPattern.MatchString(req.Email) {
			fields["email"] = "Please enter a valid email address"
		}
		existing.Email = req.Email
	}
	if req.HealthInfo != "" {
		existing.HealthInfo = req.HealthInfo
	}
	if len(fields) > 0 {
		writeFieldErrors(w, fields)
		return
	}

	if _, err := h.store.UpdatePatient(r.Context(), *existing); err != nil {
		h.log.WithComponent("patients").WithError(err).Error("update failed")
		writeError(w, http.StatusInternalServerError, "could not save patient")
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

// DeletePatient removes the record. Re-deleting is a no-op; appointments and
// the login credential stay behind.
func (h *Handler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeletePatient(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.log.WithComponent("patients").WithError(err).Error("delete failed")
		writeError(w, http.StatusInternalServerError, "could not delete patient")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
