// Package identity models the caller of a request as an explicit
// guest-or-authenticated value instead of nullable user fields.
package identity

const RoleAdmin = "admin"

type Identity struct {
	authenticated bool
	userID        string
	email         string
	role          string
	orgID         *string
}

func Guest() Identity {
	return Identity{}
}

func Authenticated(userID, email, role string, orgID *string) Identity {
	return Identity{
		authenticated: true,
		userID:        userID,
		email:         email,
		role:          role,
		orgID:         orgID,
	}
}

func (i Identity) IsAuthenticated() bool { return i.authenticated }

func (i Identity) IsAdmin() bool { return i.authenticated && i.role == RoleAdmin }

// UserID is empty for guests.
func (i Identity) UserID() string { return i.userID }

func (i Identity) Email() string { return i.email }

// OrgID is nil for guests and for users without an organization.
func (i Identity) OrgID() *string { return i.orgID }
