package schema

import "errors"

// Domain-specific errors for schema plans.
var (
	// ErrInvalidStep is returned for an .up.sql file whose name does not
	// start with a positive version number.
	ErrInvalidStep = errors.New("schema: invalid step file name")

	// ErrDuplicateStep is returned when two step files share a version.
	ErrDuplicateStep = errors.New("schema: duplicate step version")

	// ErrVersionOutOfRange is returned when asked for a version the plan
	// cannot produce.
	ErrVersionOutOfRange = errors.New("schema: version out of range")
)
