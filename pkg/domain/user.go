package domain

import "strings"

// DefaultRole is the role assigned to self-registered accounts.
const DefaultRole = "USER"

// User is the profile record the API returns for an account.
type User struct {
	ID        string `json:"id,omitempty"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"roleTypes,omitempty"`
}

// DisplayName returns "First Last" when either name is set, else the email.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	return u.Email
}
