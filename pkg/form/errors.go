package form

import "errors"

var (
	// ErrUnknownGender is returned when a gender label is not among the
	// configured options.
	ErrUnknownGender = errors.New("form: unknown gender label")
	// ErrNoGenderOptions is returned when the label bundle defines no gender
	// options.
	ErrNoGenderOptions = errors.New("form: no gender options configured")
	// ErrNoSummaryTemplate is returned when the label bundle's summary
	// template carries no formatting verbs, which usually means the catalog
	// is missing the key.
	ErrNoSummaryTemplate = errors.New("form: summary template has no verbs")
)
