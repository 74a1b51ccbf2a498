package domain

import "time"

const (
	RoleCustomer = "customer"
	RoleDriver   = "driver"
	RoleStore    = "store"
	RoleAdmin    = "admin"
)

// Account models a registered identity with credentials and role memberships.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
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
