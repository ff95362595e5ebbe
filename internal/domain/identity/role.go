package identity

import "errors"

// Role is a closed set. Authorization code switches exhaustively over it
// instead of comparing raw strings from the database.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleClient  Role = "Client"
	RoleStylist Role = "Stylist"
)

var ErrUnknownRole = errors.New("unknown role")

func Parse(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleClient, RoleStylist:
		return Role(s), nil
	}
	return "", ErrUnknownRole
}

func (r Role) Valid() bool {
	_, err := Parse(string(r))
	return err == nil
}
