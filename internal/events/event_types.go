package events

import (
	"time"

	"github.com/fusaf/role-request-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRoleRequestSubmitted EventType = "role_request_submitted"
	EventRoleRequestReviewed  EventType = "role_request_reviewed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	RequestID  string      `json:"request_id"`
	ActorEmail string      `json:"actor_email"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// RoleRequestSubmittedPayload payload.
type RoleRequestSubmittedPayload struct {
	UserEmail     string `json:"user_email"`
	UserName      string `json:"user_name"`
	CurrentRole   string `json:"current_role"`
	RequestedRole string `json:"requested_role"`
}

// RoleRequestReviewedPayload payload.
type RoleRequestReviewedPayload struct {
	UserEmail     string                   `json:"user_email"`
	UserName      string                   `json:"user_name"`
	RequestedRole string                   `json:"requested_role"`
	OldStatus     domain.RoleRequestStatus `json:"old_status"`
	NewStatus     domain.RoleRequestStatus `json:"new_status"`
	ReviewedBy    string                   `json:"reviewed_by"`
	ReviewComment string                   `json:"review_comment,omitempty"`
}
