package shared

import "github.com/google/uuid"

// Role identifies the capability class of the acting user.
// Role requirements are declared per transition in each bounded context,
// not embedded inside the state machines themselves.
type Role string

const (
	RoleSales    Role = "SALES"
	RoleDelivery Role = "DELIVERY"
	RoleFinance  Role = "FINANCE"
	RoleDirector Role = "DIRECTOR"
	RoleAdmin    Role = "ADMIN"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	switch r {
	case RoleSales, RoleDelivery, RoleFinance, RoleDirector, RoleAdmin:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// Actor is the authenticated user performing an operation.
// Every role-gated transition records the actor id and timestamp.
type Actor struct {
	ID   uuid.UUID
	Name string
	Role Role
}

// SystemActor is used for cascade writes performed by the orchestrator itself.
var SystemActor = Actor{ID: uuid.Nil, Name: "system", Role: RoleAdmin}

// Can reports whether the actor holds one of the allowed roles.
// ADMIN passes every gate; an empty allowed set means the transition is open.
func (a Actor) Can(allowed ...Role) bool {
	if len(allowed) == 0 || a.Role == RoleAdmin {
		return true
	}
	for _, r := range allowed {
		if a.Role == r {
			return true
		}
	}
	return false
}
