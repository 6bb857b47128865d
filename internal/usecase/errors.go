package usecase

import "errors"

// Shared across usecases; each usecase adds its own specific sentinels.
var (
	ErrForbidden = errors.New("access denied")
)
