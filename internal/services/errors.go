// Package services implements the QuantifyMe use cases on top of the
// scoring engine, trend aggregator, entry store and interpretation gateway.
// This file centralizes the service-level error values; handlers translate
// them into HTTP results.
package services

import "errors"

var (
	// ErrDuplicateEntry is returned when a day is submitted twice for the
	// same user. The stored entry is left untouched.
	ErrDuplicateEntry = errors.New("entry already recorded for this day")

	// ErrEntryNotFound indicates no version exists for the requested day.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrUnsupportedWindow is returned for a window length the active
	// profile does not offer.
	ErrUnsupportedWindow = errors.New("unsupported window length")

	// ErrInvalidRange is returned when from is after to.
	ErrInvalidRange = errors.New("from must not be after to")

	ErrInvalidEmail = errors.New("invalid email")
	ErrUserNotFound = errors.New("user not found")
)
