package entities

import "time"

// EventType names a domain event published to the notification bus.
type EventType string

const (
	EventUserRegistered   EventType = "user.registered"
	EventProjectSubmitted EventType = "project.submitted"
	EventProjectReviewed  EventType = "project.reviewed"
	EventProjectActivated EventType = "project.activated"
	EventProjectClosed    EventType = "project.closed"
)

// DomainEvent is serialised as JSON onto the bus. Recipient is the email
// address a mailer should notify, when there is one.
type DomainEvent struct {
	Type       EventType              `json:"type"`
	Recipient  string                 `json:"recipient,omitempty"`
	Subject    string                 `json:"subject,omitempty"`
	Message    string                 `json:"message,omitempty"`
	Data       map[string]interface{} `json:"data,omitempty"`
	OccurredAt time.Time              `json:"occurredAt"`
}
