package domain

import (
	"fmt"
	"strings"
)

// DefaultDisplayBalance is shown when the auth service omits the balance.
const DefaultDisplayBalance = 10000.00

// UserProfile is the identity record returned by the remote auth service.
// It is replaced wholesale on every login and never patched.
type UserProfile struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Name      string   `json:"name,omitempty"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Phone     *string  `json:"phone,omitempty"`
	Balance   *float64 `json:"balance,omitempty"`
}

// Valid reports whether the profile carries the identity fields a session
// needs. A mirror holding an invalid profile is treated as corrupt.
func (u UserProfile) Valid() bool {
	return strings.TrimSpace(u.ID) != "" && strings.TrimSpace(u.Email) != ""
}

// FullName prefers first+last name, then the display name, then the email.
func (u UserProfile) FullName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	switch {
	case full != "":
		return full
	case u.Name != "":
		return u.Name
	default:
		return u.Email
	}
}

func (u UserProfile) DisplayBalance() float64 {
	if u.Balance == nil {
		return DefaultDisplayBalance
	}
	return *u.Balance
}

// AccountNumber returns a masked account number derived from the user id.
// Only the last four characters are shown.
func (u UserProfile) AccountNumber() string {
	id := strings.TrimSpace(u.ID)
	if len(id) > 4 {
		id = id[len(id)-4:]
	}
	return fmt.Sprintf("****-****-%s%s", strings.Repeat("0", 4-len(id)), id)
}
