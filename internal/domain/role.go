package domain

// Portal role identifiers. Athlete is the default role granted at
// registration; club_owner and coach_judge are the only roles a member may
// request an upgrade to; admin reviews those requests.
const (
	RoleAthlete    = "athlete"
	RoleClubOwner  = "club_owner"
	RoleCoachJudge = "coach_judge"
	RoleAdmin      = "admin"
)

// RequestableRoles is the closed set of roles eligible as an upgrade target.
var RequestableRoles = map[string]struct{}{
	RoleClubOwner:  {},
	RoleCoachJudge: {},
}

// IsRequestableRole reports whether role may be the target of a role request.
func IsRequestableRole(role string) bool {
	_, ok := RequestableRoles[role]
	return ok
}
