package models

// Role is the resolved role of an authenticated caller. The engine trusts
// the identity collaborator that produced it.
type Role string

const (
	RoleClient Role = "client"
	RoleArtist Role = "artist"
	RoleStudio Role = "studio"
	RoleAdmin  Role = "admin"
	// RoleSystem is used by background jobs (e.g. the payment-window
	// expiry worker) acting without a user.
	RoleSystem Role = "system"
)

// Actor is the {userId, role} pair supplied to every lifecycle and rating
// operation.
type Actor struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}

// IsAdmin reports whether the actor may use admin overrides.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin || a.Role == RoleSystem
}
