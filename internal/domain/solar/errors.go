package solar

import "errors"

var (
	// ErrInvalidDate is returned for a calendar date that does not exist.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidCoordinate is returned for a latitude or longitude out of range.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrInvalidZenithKind is returned for an unrecognized zenith name.
	ErrInvalidZenithKind = errors.New("invalid zenith kind")
	// ErrInvalidEventKind is returned for an event other than rise or set.
	ErrInvalidEventKind = errors.New("invalid event kind")
	// ErrInvalidOffset is returned for a UTC offset that no clock on Earth uses.
	ErrInvalidOffset = errors.New("invalid UTC offset")
)
