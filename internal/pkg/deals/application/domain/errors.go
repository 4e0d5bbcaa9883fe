package deals

import "errors"

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrAlreadyProcessed = errors.New("already processed")
)
