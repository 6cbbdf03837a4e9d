package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrVotingClosed          = errors.New("voting is not open")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
