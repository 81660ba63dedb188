// Package store holds the in-process collection of role requests. The
// collection lives for the lifetime of the hosting process and is reset to
// the seed data on restart; durability across restarts is explicitly not
// provided. Each running instance owns an independent copy.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/fusaf/role-request-service/internal/domain"
)

// ErrNotFound is returned when an update targets an unknown request id.
var ErrNotFound = errors.New("role request not found")

// ErrNotPending is returned when an update targets a request that already
// left the pending state.
var ErrNotPending = errors.New("role request already reviewed")

// StatusPatch carries the review fields merged into a request on transition
// out of pending.
type StatusPatch struct {
	Status        domain.RoleRequestStatus
	ReviewedBy    string
	ReviewDate    time.Time
	ReviewComment string
}

// Stats aggregates request counts by status for admin display.
type Stats struct {
	Total       int
	Pending     int
	Approved    int
	Rejected    int
	LastUpdated time.Time
}

// Store is the process-wide owner of all role requests. All mutations are
// serialized through the mutex; reads hand out copies so callers never alias
// the internal slice. Construct one instance at startup and inject it.
type Store struct {
	mu          sync.RWMutex
	requests    []domain.RoleRequest
	lastUpdated time.Time
}

// New creates a store pre-populated with the given requests.
func New(seed []domain.RoleRequest) *Store {
	s := &Store{
		requests:    make([]domain.RoleRequest, 0, len(seed)),
		lastUpdated: time.Now().UTC(),
	}
	s.requests = append(s.requests, seed...)
	return s
}

// List returns an isolated snapshot of all requests in storage order.
func (s *Store) List() []domain.RoleRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]domain.RoleRequest, len(s.requests))
	copy(snapshot, s.requests)
	return snapshot
}

// Add appends a new request. Re-adding an id that already exists is a no-op
// returning false, so duplicate-submit retries carrying a reused id cannot
// create a second entry.
func (s *Store) Add(req domain.RoleRequest) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.requests {
		if s.requests[i].ID == req.ID {
			return false
		}
	}
	s.requests = append(s.requests, req)
	s.lastUpdated = time.Now().UTC()
	return true
}

// UpdateStatus merges the patch into the request with the given id. The
// prior status is checked under the mutex: approved and rejected are
// terminal, so concurrent reviews of the same request settle to exactly one
// winner.
func (s *Store) UpdateStatus(id string, patch StatusPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.requests {
		if s.requests[i].ID != id {
			continue
		}
		if s.requests[i].Status != domain.RoleRequestStatusPending {
			return ErrNotPending
		}
		reviewDate := patch.ReviewDate
		s.requests[i].Status = patch.Status
		s.requests[i].ReviewedBy = patch.ReviewedBy
		s.requests[i].ReviewDate = &reviewDate
		s.requests[i].ReviewComment = patch.ReviewComment
		s.lastUpdated = time.Now().UTC()
		return nil
	}
	return ErrNotFound
}

// GetByID returns a copy of the request with the given id.
func (s *Store) GetByID(id string) (domain.RoleRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.requests {
		if s.requests[i].ID == id {
			return s.requests[i], true
		}
	}
	return domain.RoleRequest{}, false
}

// FindPendingByUser returns the first pending request whose UserEmail matches
// email exactly. Matching is case-sensitive.
func (s *Store) FindPendingByUser(email string) (domain.RoleRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.requests {
		if s.requests[i].UserEmail == email && s.requests[i].Status == domain.RoleRequestStatusPending {
			return s.requests[i], true
		}
	}
	return domain.RoleRequest{}, false
}

// Stats derives per-status counts. Purely informational; no side effects.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := Stats{Total: len(s.requests), LastUpdated: s.lastUpdated}
	for i := range s.requests {
		switch s.requests[i].Status {
		case domain.RoleRequestStatusPending:
			stats.Pending++
		case domain.RoleRequestStatusApproved:
			stats.Approved++
		case domain.RoleRequestStatusRejected:
			stats.Rejected++
		}
	}
	return stats
}
