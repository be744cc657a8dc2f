package domain

import "errors"

var (
	ErrEmptyQuery   = errors.New("empty query")
	ErrMissingDates = errors.New("missing date range")
	ErrBadFromDate  = errors.New("invalid from date")
	ErrBadToDate    = errors.New("invalid to date")
	ErrDateOrder    = errors.New("from date after to date")
)
