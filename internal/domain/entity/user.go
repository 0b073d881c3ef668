// Package entity defines the core business entities for the domain layer.
package entity

// AuthenticatedUser is the caller resolved from a verified bearer token.
type AuthenticatedUser struct {
	ID        string
	Email     string
	FirstName *string
	LastName  *string
}

// DisplayName returns the best available human-readable name for the user.
func (u *AuthenticatedUser) DisplayName() string {
	switch {
	case u.FirstName != nil && *u.FirstName != "" && u.LastName != nil && *u.LastName != "":
		return *u.FirstName + " " + *u.LastName
	case u.FirstName != nil && *u.FirstName != "":
		return *u.FirstName
	case u.Email != "":
		return u.Email
	default:
		return u.ID
	}
}

// Owner returns the ownership tag for records created by this user.
func (u *AuthenticatedUser) Owner() Owner {
	return UserOwner(u.ID)
}
