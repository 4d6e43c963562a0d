package model

// Role is a user's function in the sales organization.
type Role string

const (
	RoleSalesRep  Role = "sales_rep"
	RoleManager   Role = "manager"
	RoleExecutive Role = "executive"
)

// User is an actor that owns deals, quotes, and activities.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	Department string `json:"department,omitempty"`
	AvatarURL  string `json:"avatarUrl,omitempty"`
}
