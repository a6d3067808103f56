package shared

import "github.com/google/uuid"

// Actor is the request-scoped identity performing an operation.
// Built by the auth middleware from validated JWT claims and passed
// explicitly into every service call, never read from ambient state.
type Actor struct {
	UserID   uuid.UUID
	Username string
	IsAdmin  bool
}

// ActorSystem is the audit-log label for actions taken by the platform itself
const ActorSystem = "Sistema"

// Label returns the audit-log label for this actor
func (a Actor) Label() string {
	if a.IsAdmin {
		return "Artista"
	}
	return "Cliente"
}
