package enums

import "fmt"

// UserRole distinguishes counter staff from customers.
type UserRole string

const (
	UserRoleCustomer UserRole = "CUSTOMER"
	UserRoleStaff    UserRole = "STAFF"
	UserRoleAdmin    UserRole = "ADMIN"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleCustomer, UserRoleStaff, UserRoleAdmin:
		return true
	}
	return false
}

func ParseUserRole(value string) (UserRole, error) {
	role := UserRole(value)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid user role %q", value)
	}
	return role, nil
}
