package domain

import "time"

// AccountStatus represents lifecycle states for a portal account.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
)

// Account is the domain model for portal members and administrators.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Roles        []string
	Status       AccountStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the account holds the given role.
func (a *Account) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the account may review role requests.
func (a *Account) IsAdmin() bool {
	return a.HasRole(RoleAdmin)
}

// PrimaryRole returns the first held role, falling back to athlete.
func (a *Account) PrimaryRole() string {
	if len(a.Roles) > 0 {
		return a.Roles[0]
	}
	return RoleAthlete
}
