package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAdminDeactivated       EventType = "admin_deactivated"
	EventAdminRestored          EventType = "admin_restored"
	EventDepartmentDeleted      EventType = "department_deleted"
	EventDepartmentRestored     EventType = "department_restored"
	EventEmployeeDeactivated    EventType = "employee_deactivated"
	EventEmployeeRestored       EventType = "employee_restored"
	EventVerificationCodeIssued EventType = "verification_code_issued"
)

// Event represents a domain event emitted by services after the primary
// state change commits. Delivery is fire-and-forget.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RecipientPayload carries the address and display name notifications go to.
type RecipientPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// VerificationCodePayload carries an issued verification code.
type VerificationCodePayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Code  string `json:"code"`
}
