package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"clinic-management-api/internal/auth"
	"clinic-management-api/internal/files"
	"clinic-management-api/internal/logger"
	"clinic-management-api/internal/middleware"
	"clinic-management-api/internal/model"
	"clinic-management-api/internal/store"
)

type Handler struct {
	store  *store.Store
	gate   *auth.Gate
	blobs  *files.BlobStore
	log    *logger.Logger
	secret string
}

func New(st *store.Store, gate *auth.Gate, blobs *files.BlobStore, log *logger.Logger, secret string) *Handler {
	return &Handler{store: st, gate: gate, blobs: blobs, log: log, secret: secret}
}

// Router wires all routes. Auth state rides on every request; each protected
// route carries its own role guard.
func (h *Handler) Router(loginLimiter *middleware.RateLimiter) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Metrics)
	r.Use(middleware.Authenticate(h.secret))

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.Handle("/auth/login", loginLimiter.Middleware(http.HandlerFunc(h.Login))).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodPost)
	api.HandleFunc("/auth/session", h.Session).Methods(http.MethodGet)

	admin := middleware.RequireRole(model.RoleAdmin)
	api.Handle("/patients", admin(http.HandlerFunc(h.ListPatients))).Methods(http.MethodGet)
	api.Handle("/patients", admin(http.HandlerFunc(h.CreatePatient))).Methods(http.MethodPost)
	api.Handle("/patients/{id}", admin(http.HandlerFunc(h.GetPatient))).Methods(http.MethodGet)
	api.Handle("/patients/{id}", admin(http.HandlerFunc(h.UpdatePatient))).Methods(http.MethodPut)
	api.Handle("/patients/{id}", admin(http.HandlerFunc(h.DeletePatient))).Methods(http.MethodDelete)
	api.Handle("/appointments", admin(http.HandlerFunc(h.ListAppointments))).Methods(http.MethodGet)
	api.Handle("/appointments", admin(http.HandlerFunc(h.CreateAppointment))).Methods(http.MethodPost)
	api.Handle("/appointments/{id}", admin(http.HandlerFunc(h.GetAppointment))).Methods(http.MethodGet)
	api.Handle("/appointments/{id}", admin(http.HandlerFunc(h.UpdateAppointment))).Methods(http.MethodPut)
	api.Handle("/appointments/{id}", admin(http.HandlerFunc(h.DeleteAppointment))).Methods(http.MethodDelete)
	api.Handle("/dashboard/admin", admin(http.HandlerFunc(h.AdminDashboard))).Methods(http.MethodGet)

	patientOnly := middleware.RequireRole(model.RolePatient)
	api.Handle("/dashboard/patient", patientOnly(http.HandlerFunc(h.PatientDashboard))).Methods(http.MethodGet)

	anyRole := middleware.RequireRole(model.RoleAdmin, model.RolePatient)
	r.Handle("/files/{digest}", anyRole(http.HandlerFunc(h.ServeFile))).Methods(http.MethodGet)

	return r
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "clinic-management-api",
		"timestamp": time.Now().UTC(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeFieldErrors reports validation failures keyed by field so the client
// can show them inline. Nothing is persisted when this is returned.
func writeFieldErrors(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"fields": fields,
	})
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
