package domain

import "time"

// RoleRequestStatus enumerates lifecycle states for role upgrade requests.
type RoleRequestStatus string

const (
	RoleRequestStatusPending  RoleRequestStatus = "pending"
	RoleRequestStatusApproved RoleRequestStatus = "approved"
	RoleRequestStatusRejected RoleRequestStatus = "rejected"
)

// IsTerminal reports whether no further transitions are defined for the status.
func (s RoleRequestStatus) IsTerminal() bool {
	return s == RoleRequestStatusApproved || s == RoleRequestStatusRejected
}

// RoleRequest records one member's ask to be upgraded to a privileged role.
// Identity is keyed by UserEmail with exact-match comparison; the snapshot of
// UserName is taken at submission time and never re-synced.
type RoleRequest struct {
	ID            string
	UserEmail     string
	UserName      string
	CurrentRole   string
	RequestedRole string
	Reason        string
	Status        RoleRequestStatus
	RequestDate   time.Time
	ReviewedBy    string
	ReviewDate    *time.Time
	ReviewComment string
}

// IsPending reports whether the request still awaits review.
func (r *RoleRequest) IsPending() bool {
	return r.Status == RoleRequestStatusPending
}
