package identity

import "time"

// Role enumerates the access levels a user can hold. It is assigned once at
// creation and never changed by the authentication flow.
type Role string

const (
	RoleStandard      Role = "standard"
	RoleAdministrator Role = "administrator"
)

// User represents a storefront customer identified by phone number.
type User struct {
	ID              string
	Phone           string
	Name            string
	Email           string
	Location        string
	Role            Role
	ProfileComplete bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProfileUpdate carries the post-verification profile fields.
type ProfileUpdate struct {
	Name     string
	Email    string
	Location string
}

// Projection is the minimal user shape returned to clients.
type Projection struct {
	ID              string `json:"id"`
	Phone           string `json:"phone"`
	Name            string `json:"name"`
	Role            Role   `json:"role"`
	ProfileComplete bool   `json:"profileComplete"`
}

// Project reduces a user to its client-visible fields.
func (u User) Project() Projection {
	return Projection{
		ID:              u.ID,
		Phone:           u.Phone,
		Name:            u.Name,
		Role:            u.Role,
		ProfileComplete: u.ProfileComplete,
	}
}
