package domain

import "time"

type UserRole string

const (
	UserRoleGuest UserRole = "guest"
	UserRoleHost  UserRole = "host"
	UserRoleAdmin UserRole = "admin"
)

// IsValid reports whether the role is one of the known roles.
func (r UserRole) IsValid() bool {
	return r == UserRoleGuest || r == UserRoleHost || r == UserRoleAdmin
}

// CanHost reports whether the role is allowed to list properties.
func (r UserRole) CanHost() bool {
	return r == UserRoleHost || r == UserRoleAdmin
}

// User is an application user tied to a Google identity.
// ID is the OAuth subject claim; there is no password credential.
type User struct {
	ID                       string   `json:"id"`
	Email                    string   `json:"email"`
	Name                     string   `json:"name"`
	Picture                  string   `json:"picture"`
	Role                     UserRole `json:"role"`
	StripeAccountID          string   `json:"stripe_account_id,omitempty"`
	StripeOnboardingComplete bool     `json:"stripe_onboarding_complete"`
	CreatedOn                time.Time `json:"created_on"`
	UpdatedOn                time.Time `json:"updated_on"`
}
