package e2e

import "errors"

// Configuration and precondition errors returned by New and Protect. These
// are ordinary Go errors, comparable with errors.Is, and are distinct from
// Status: a Status classifies a well-formed Check outcome, these report
// that the profile was misconfigured or that a buffer handed to Protect
// does not match that configuration. Check never returns one of these; a
// buffer of the wrong length reaches Check as a DataLengthError Status.
var (
	// ErrDataLengthRange is returned when a configuration's length bounds
	// are inconsistent, or when a buffer passed to Protect does not fall
	// within the profile's configured length.
	ErrDataLengthRange = errors.New("e2e: data length outside configured range")
	// ErrMaxDeltaCounter is returned when MaxDeltaCounter is zero, equal to
	// the largest value of the counter's integer type (Profiles 4 to 8), or
	// greater than the counter's largest value (14 for Profile 11, 15 for
	// Profile 22).
	ErrMaxDeltaCounter = errors.New("e2e: max delta counter must be between 1 and the counter's maximum value")
	// ErrOffsetRange is returned when Offset does not leave room for the
	// profile's header within the configured data length.
	ErrOffsetRange = errors.New("e2e: offset does not leave room for the header within the configured data length")
	// ErrMisalignedOffset is returned when Profile 11's CounterOffset,
	// CRCOffset or NibbleOffset is not a multiple of the bit width it must
	// be aligned to, or when Profile 11's or Profile 22's DataLength is not
	// a multiple of 8.
	ErrMisalignedOffset = errors.New("e2e: offset is not aligned to the field width this profile requires")
	// ErrDataTooLong is returned when the configured data length exceeds
	// the maximum this profile can address.
	ErrDataTooLong = errors.New("e2e: data length exceeds the maximum this profile can address")
)
