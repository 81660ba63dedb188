package store

import (
	"time"

	"github.com/fusaf/role-request-service/internal/domain"
)

// Seed returns the fixed set of records present at process start, used in
// lieu of durable persistence: one request in each lifecycle state.
func Seed() []domain.RoleRequest {
	reviewer := "admin@federation.example"
	approvedAt := time.Date(2025, 1, 6, 9, 15, 0, 0, time.UTC)
	rejectedAt := time.Date(2025, 1, 5, 11, 30, 0, 0, time.UTC)

	return []domain.RoleRequest{
		{
			ID:            "seed-1",
			UserEmail:     "john.doe@example.com",
			UserName:      "John Doe",
			CurrentRole:   domain.RoleAthlete,
			RequestedRole: domain.RoleClubOwner,
			Reason:        "I want to open a sports aerobics club in my city and have several years of training experience.",
			Status:        domain.RoleRequestStatusPending,
			RequestDate:   time.Date(2025, 1, 7, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:            "seed-2",
			UserEmail:     "coach.maria@example.com",
			UserName:      "Maria Kovalenko",
			CurrentRole:   domain.RoleAthlete,
			RequestedRole: domain.RoleCoachJudge,
			Reason:        "Five years of coaching experience; applying to become a certified competition judge.",
			Status:        domain.RoleRequestStatusApproved,
			RequestDate:   time.Date(2025, 1, 5, 14, 20, 0, 0, time.UTC),
			ReviewedBy:    reviewer,
			ReviewDate:    &approvedAt,
			ReviewComment: "Approved. Experience confirmed by documents.",
		},
		{
			ID:            "seed-3",
			UserEmail:     "trainer.alex@example.com",
			UserName:      "Alex Shevchenko",
			CurrentRole:   domain.RoleAthlete,
			RequestedRole: domain.RoleCoachJudge,
			Reason:        "Graduated from a sports university with a gymnastics coaching qualification.",
			Status:        domain.RoleRequestStatusRejected,
			RequestDate:   time.Date(2025, 1, 4, 16, 45, 0, 0, time.UTC),
			ReviewedBy:    reviewer,
			ReviewDate:    &rejectedAt,
			ReviewComment: "Additional documents on aerobics qualification required.",
		},
	}
}
