package office

import "errors"

var (
	ErrNoActiveOffices   = errors.New("organization has no active office locations")
	ErrInvalidOfficeFile = errors.New("invalid office locations file")
)
