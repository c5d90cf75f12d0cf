package progress

import "errors"

// Each not-found condition is distinct so the handler can render the right
// message; all of them map to HTTP 404.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrTrainingNotFound = errors.New("training not found")
	ErrProgressNotFound = errors.New("training progress not found")
	ErrModuleNotFound   = errors.New("module not found")
	ErrVideoNotFound    = errors.New("video not found")
)

// IsNotFound reports whether err is any of the not-found conditions
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTrainingNotFound) ||
		errors.Is(err, ErrProgressNotFound) ||
		errors.Is(err, ErrModuleNotFound) ||
		errors.Is(err, ErrVideoNotFound)
}
