package user

import "errors"

var (
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrEmployeeRequired        = errors.New("an employee profile in an organization is required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
