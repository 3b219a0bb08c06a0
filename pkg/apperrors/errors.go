package apperrors

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrNoMindOp          = errors.New("no mindop configured for user")
	ErrAgentCardConflict = errors.New("agent card url already exists")
	ErrMissingBaseURL    = errors.New("base url is not configured")
	ErrValidation        = errors.New("validation failed")
)
