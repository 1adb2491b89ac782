package jokes

import "errors"

// Service errors.
var (
	ErrJokeNotFound  = errors.New("joke not found")
	ErrInvalidStatus = errors.New("invalid joke status")
	ErrEmptyContent  = errors.New("joke content is empty")
)
