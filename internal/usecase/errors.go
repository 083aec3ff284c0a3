package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrEmptyResult           = errors.New("no events available")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

func isEmptyResult(err error) bool {
	return errors.Is(err, ErrEmptyResult)
}
