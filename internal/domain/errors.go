package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadySubmitted = errors.New("application already submitted")
	ErrNoActiveCycle    = errors.New("no active recruiting cycle")
	ErrOutOfRange       = errors.New("value out of range")
	ErrEmptyContent     = errors.New("content is empty")
	ErrForbidden        = errors.New("forbidden")

	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidStatus   = errors.New("invalid status transition")
	ErrNotSubmitted    = errors.New("application has not been submitted")
	ErrDeadlinePassed  = errors.New("application deadline has passed")
	ErrResumeRequired  = errors.New("a resume is required for this cycle")
	ErrSlotTaken       = errors.New("interview slot already taken")
	ErrRateLimited     = errors.New("too many saves, try again shortly")
	ErrAlreadyExists   = errors.New("already exists")
)

// IsSoftFailure reports whether err should leave the caller's local state in
// place and be retried later instead of being surfaced as a hard error.
func IsSoftFailure(err error) bool {
	return errors.Is(err, ErrNoActiveCycle) || errors.Is(err, ErrRateLimited)
}
