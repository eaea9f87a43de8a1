package model

// Role of an authenticated account.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RolePatient Role = "Patient"
)

// Appointment status values. Anything else is rejected at write time.
const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
	StatusNoShow    = "No-Show"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Patient field names mirror the persisted JSON layout and must not change.
type Patient struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DOB        string `json:"dob"`
	Contact    string `json:"contact"`
	Email      string `json:"email"`
	HealthInfo string `json:"healthInfo"`
}

type Appointment struct {
	ID              string           `json:"id"`
	PatientID       string           `json:"patientId"`
	Title           string           `json:"title"`
	AppointmentDate string           `json:"appointmentDate"`
	Status          string           `json:"status"`
	Cost            float64          `json:"cost"`
	Description     string           `json:"description"`
	Treatment       string           `json:"treatment"`
	NextDate        *string          `json:"nextDate"`
	Files           []FileAttachment `json:"files"`
}

// FileAttachment describes an uploaded document. Data holds the serving path
// of the content-addressed blob, not the bytes themselves.
type FileAttachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	Data string `json:"data"`
}

// Credential is a login record. Password holds a bcrypt hash; the plaintext
// is only ever surfaced once, at patient creation.
type Credential struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	PatientID string `json:"patientId,omitempty"`
}

// Identity is the authenticated credential without its secret, persisted
// under the session key so it survives a restart.
type Identity struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Email     string `json:"email"`
	PatientID string `json:"patientId,omitempty"`
}

func (c Credential) Identity() Identity {
	return Identity{ID: c.ID, Role: c.Role, Email: c.Email, PatientID: c.PatientID}
}
