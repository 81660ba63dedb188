package service

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/fusaf/role-request-service/internal/config"
	"github.com/fusaf/role-request-service/internal/domain"
	"github.com/fusaf/role-request-service/internal/events"
	"github.com/fusaf/role-request-service/internal/store"
	apperrors "github.com/fusaf/role-request-service/pkg/util"
)

// RoleRequestService coordinates the role upgrade workflow: member
// submission, admin review, and self-service status checks.
type RoleRequestService struct {
	requests   *store.Store
	dispatcher events.Dispatcher
	cfg        config.RoleRequestConfig
}

// SubmitInput describes the member-supplied part of a submission.
type SubmitInput struct {
	RequestedRole string
	Reason        string
}

// Identity carries the session-derived fields captured on a request.
type Identity struct {
	Email string
	Name  string
}

// UserStatus bundles a member's pending request (if any) for status polling.
type UserStatus struct {
	Request          *domain.RoleRequest
	HasActiveRequest bool
}

// NewRoleRequestService constructs the service.
func NewRoleRequestService(requests *store.Store, dispatcher events.Dispatcher, cfg config.RoleRequestConfig) *RoleRequestService {
	return &RoleRequestService{
		requests:   requests,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

// Submit validates the input and records a new pending request. The store is
// never touched on validation failure, and a member with an outstanding
// pending request gets a conflict instead of a second entry.
func (s *RoleRequestService) Submit(ctx context.Context, identity Identity, input SubmitInput) (*domain.RoleRequest, error) {
	if !domain.IsRequestableRole(input.RequestedRole) {
		return nil, apperrors.NewValidationError("requested role is not eligible", map[string]any{
			"requested_role": input.RequestedRole,
		})
	}

	// character minimum, not bytes: Cyrillic reasons are two bytes per letter
	reason := strings.TrimSpace(input.Reason)
	if utf8.RuneCountInString(reason) < s.cfg.MinReasonLength {
		return nil, apperrors.NewValidationError("reason is too short", map[string]any{
			"min_length": s.cfg.MinReasonLength,
		})
	}

	if existing, ok := s.requests.FindPendingByUser(identity.Email); ok {
		return nil, apperrors.NewConflict("an active role request already exists", map[string]any{
			"request_id": existing.ID,
		})
	}

	name := identity.Name
	if name == "" {
		name = identity.Email
	}

	request := domain.RoleRequest{
		ID:            uuid.NewString(),
		UserEmail:     identity.Email,
		UserName:      name,
		CurrentRole:   s.cfg.DefaultCurrentRole,
		RequestedRole: input.RequestedRole,
		Reason:        reason,
		Status:        domain.RoleRequestStatusPending,
		RequestDate:   time.Now().UTC(),
	}
	s.requests.Add(request)

	s.publish(ctx, events.Event{
		Type:       events.EventRoleRequestSubmitted,
		RequestID:  request.ID,
		ActorEmail: identity.Email,
		Payload: events.RoleRequestSubmittedPayload{
			UserEmail:     request.UserEmail,
			UserName:      request.UserName,
			CurrentRole:   request.CurrentRole,
			RequestedRole: request.RequestedRole,
		},
	})
	return &request, nil
}

// Review applies an admin decision to a pending request. Approved and
// rejected are terminal: reviewing a request that already left pending is a
// conflict, never a silent re-approval.
func (s *RoleRequestService) Review(ctx context.Context, reviewerEmail, requestID string, decision domain.RoleRequestStatus, comment string) (*domain.RoleRequest, error) {
	if decision != domain.RoleRequestStatusApproved && decision != domain.RoleRequestStatusRejected {
		return nil, apperrors.NewValidationError("decision must be approved or rejected", nil)
	}

	target, ok := s.requests.GetByID(requestID)
	if !ok {
		return nil, apperrors.NewNotFound("role request", map[string]any{"request_id": requestID})
	}
	if !target.IsPending() {
		return nil, apperrors.NewConflict("role request already reviewed", map[string]any{
			"request_id": requestID,
			"status":     target.Status,
		})
	}

	patch := store.StatusPatch{
		Status:        decision,
		ReviewedBy:    reviewerEmail,
		ReviewDate:    time.Now().UTC(),
		ReviewComment: comment,
	}
	// the store re-checks the pending state under its lock; a concurrent
	// review that won the race surfaces here as a conflict
	if err := s.requests.UpdateStatus(requestID, patch); err != nil {
		switch err {
		case store.ErrNotFound:
			return nil, apperrors.NewNotFound("role request", map[string]any{"request_id": requestID})
		case store.ErrNotPending:
			current, _ := s.requests.GetByID(requestID)
			return nil, apperrors.NewConflict("role request already reviewed", map[string]any{
				"request_id": requestID,
				"status":     current.Status,
			})
		default:
			return nil, apperrors.MapError(err)
		}
	}

	updated, _ := s.requests.GetByID(requestID)

	s.publish(ctx, events.Event{
		Type:       events.EventRoleRequestReviewed,
		RequestID:  requestID,
		ActorEmail: reviewerEmail,
		Payload: events.RoleRequestReviewedPayload{
			UserEmail:     target.UserEmail,
			UserName:      target.UserName,
			RequestedRole: target.RequestedRole,
			OldStatus:     domain.RoleRequestStatusPending,
			NewStatus:     decision,
			ReviewedBy:    reviewerEmail,
			ReviewComment: comment,
		},
	})
	return &updated, nil
}

// ListForAdmin returns requests for the admin dashboard, newest first,
// optionally narrowed to a single status. An empty or "all" filter returns
// everything.
func (s *RoleRequestService) ListForAdmin(statusFilter string) []domain.RoleRequest {
	all := s.requests.List()

	filtered := all
	if statusFilter != "" && statusFilter != "all" {
		filtered = make([]domain.RoleRequest, 0, len(all))
		for _, req := range all {
			if string(req.Status) == statusFilter {
				filtered = append(filtered, req)
			}
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].RequestDate.After(filtered[j].RequestDate)
	})
	return filtered
}

// StatusForUser reports whether the member has an outstanding request.
func (s *RoleRequestService) StatusForUser(email string) UserStatus {
	if req, ok := s.requests.FindPendingByUser(email); ok {
		return UserStatus{Request: &req, HasActiveRequest: true}
	}
	return UserStatus{}
}

// Stats proxies the store's per-status counters.
func (s *RoleRequestService) Stats() store.Stats {
	return s.requests.Stats()
}

func (s *RoleRequestService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
