package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"clinic-management-api/internal/files"
	"clinic-management-api/internal/model"
)

// accepted input layouts; everything is stored as RFC 3339 UTC
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func normalizeDate(s string) (string, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.RFC3339), true
		}
	}
	return "", false
}

// coerceCost accepts a JSON number or a numeric string and clamps the result
// to a non-negative value. Anything unparsable becomes 0 rather than failing
// the whole submission.
func coerceCost(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		f, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
	}
	if f < 0 {
		return 0
	}
	return f
}

type fileUpload struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Size    int64  `json:"size"`
	Data    string `json:"data"`
	Content string `json:"content"`
}

type appointmentRequest struct {
	Title           string          `json:"title"`
	PatientID       string          `json:"patientId"`
	AppointmentDate string          `json:"appointmentDate"`
	Status          string          `json:"status"`
	Cost            json.RawMessage `json:"cost"`
	Description     string          `json:"description"`
	Treatment       string          `json:"treatment"`
	NextDate        string          `json:"nextDate"`
	Files           []fileUpload    `json:"files"`
}

// buildAppointment validates the submission and produces the record to
// persist. No partial writes: any field error aborts before storage is
// touched.
func (h *Handler) buildAppointment(req appointmentRequest, id string) (model.Appointment, map[string]string) {
	fields := map[string]string{}

	if strings.TrimSpace(req.Title) == "" {
		fields["title"] = "Title is required"
	}
	if req.PatientID == "" {
		fields["patientId"] = "Patient is required"
	}

	var apptDate string
	if req.AppointmentDate == "" {
		fields["appointmentDate"] = "Date and time are required"
	} else if normalized, ok := normalizeDate(req.AppointmentDate); ok {
		apptDate = normalized
	} else {
		fields["appointmentDate"] = "Please enter a valid date and time"
	}

	status := req.Status
	if status == "" {
		status = model.StatusScheduled
	} else if !model.ValidStatus(status) {
		fields["status"] = "Unknown status"
	}

	var nextDate *string
	if req.NextDate != "" {
		if normalized, ok := normalizeDate(req.NextDate); ok {
			nextDate = &normalized
		} else {
			fields["nextDate"] = "Please enter a valid date and time"
		}
	}

	attachments, fileErr := h.storeAttachments(req.Files)
	if fileErr != "" {
		fields["files"] = fileErr
	}

	if len(fields) > 0 {
		return model.Appointment{}, fields
	}
	return model.Appointment{
		ID:              id,
		PatientID:       req.PatientID,
		Title:           req.Title,
		AppointmentDate: apptDate,
		Status:          status,
		Cost:            coerceCost(req.Cost),
		Description:     req.Description,
		Treatment:       req.Treatment,
		NextDate:        nextDate,
		Files:           attachments,
	}, nil
}

// storeAttachments persists new uploads (base64 content) and keeps entries
// that already reference a stored blob. The blob digest goes into the record
// so the bytes survive restarts.
func (h *Handler) storeAttachments(uploads []fileUpload) ([]model.FileAttachment, string) {
	out := []model.FileAttachment{}
	for _, f := range uploads {
		switch {
		case f.Content != "":
			data, err := base64.StdEncoding.DecodeString(f.Content)
			if err != nil {
				return nil, "Attachment content must be base64 encoded"
			}
			digest, err := h.blobs.Put(data)
			if err != nil {
				h.log.WithComponent("appointments").WithError(err).Error("attachment store failed")
				return nil, "Could not store attachment"
			}
			id := f.ID
			if id == "" {
				id = uuid.New().String()
			}
			out = append(out, model.FileAttachment{
				ID:   id,
				Name: f.Name,
				Type: f.Type,
				Size: int64(len(data)),
				Data: "/files/" + digest,
			})
		case f.Data != "":
			// retained from a previous save
			out = append(out, model.FileAttachment{
				ID: f.ID, Name: f.Name, Type: f.Type, Size: f.Size, Data: f.Data,
			})
		}
	}
	return out, ""
}

func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	if pid := r.URL.Query().Get("patientId"); pid != "" {
		appts := h.store.AppointmentsByPatient(r.Context(), pid)
		if appts == nil {
			appts = []model.Appointment{}
		}
		writeJSON(w, http.StatusOK, appts)
		return
	}
	writeJSON(w, http.StatusOK, h.store.Appointments(r.Context()))
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	a, ok := h.store.AppointmentByID(r.Context(), mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req appointmentRequest
	if !readJSON(w, r, &req) {
		return
	}
	appt, fields := h.buildAppointment(req, uuid.New().String())
	if fields != nil {
		writeFieldErrors(w, fields)
		return
	}
	if err := h.store.CreateAppointment(r.Context(), appt); err != nil {
		h.log.WithComponent("appointments").WithError(err).Error("create failed")
		writeError(w, http.StatusInternalServerError, "could not save appointment")
		return
	}
	writeJSON(w, http.StatusCreated, appt)
}

// UpdateAppointment replaces the record wholesale, like the original edit
// form did. An unknown id changes nothing.
func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	var req appointmentRequest
	if !readJSON(w, r, &req) {
		return
	}
	appt, fields := h.buildAppointment(req, mux.Vars(r)["id"])
	if fields != nil {
		writeFieldErrors(w, fields)
		return
	}
	changed, err := h.store.UpdateAppointment(r.Context(), appt)
	if err != nil {
		h.log.WithComponent("appointments").WithError(err).Error("update failed")
		writeError(w, http.StatusInternalServerError, "could not save appointment")
		return
	}
	if !changed {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteAppointment(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.log.WithComponent("appointments").WithError(err).Error("delete failed")
		writeError(w, http.StatusInternalServerError, "could not delete appointment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeFile streams a stored attachment blob back to the browser.
func (h *Handler) ServeFile(w http.ResponseWriter, r *http.Request) {
	data, err := h.blobs.Get(mux.Vars(r)["digest"])
	if err != nil {
		if err == files.ErrNotFound {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}
