package queue

// DoctorStatusEvent is published for the mail service when an admin
// verifies or rejects a doctor account.
type DoctorStatusEvent struct {
	Type   string `json:"type"`
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

// ContactEvent is published when a contact form submission arrives.
type ContactEvent struct {
	Type      string `json:"type"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

const (
	EventDoctorStatusChanged = "doctor.status_changed"
	EventContactReceived     = "contact.received"
)
