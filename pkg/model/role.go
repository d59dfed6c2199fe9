package model

import "github.com/m-mizutani/goerr/v2"

var ErrInvalidRole = goerr.New("invalid role")

// Role identifies the caller of a retrieval request. Customers are restricted
// to public documents; admins retrieve without an access filter. There is no
// fallthrough: an unrecognized role is rejected at the boundary instead of
// silently granting unrestricted access.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// ParseRole converts a raw string into a Role
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer:
		return RoleCustomer, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", goerr.Wrap(ErrInvalidRole, "unknown role", goerr.V("role", s))
	}
}
