package e2e

// Profile is implemented by every E2E profile type in this package. It lets
// callers that don't care which concrete profile they're driving — a
// transport adapter iterating over a table of configured profiles, say —
// hold "some profile" generically.
type Profile interface {
	// Protect writes CRC, counter, Data ID and length fields into data
	// in-place, advancing the profile's internal counter. data must match
	// the length this profile was configured for; ErrDataLengthRange
	// otherwise.
	Protect(data []byte) error
	// Check verifies data's CRC, Data ID, length and counter fields against
	// this profile's configuration and previously accepted counter. Every
	// protocol-level outcome, including a buffer of the wrong length, is
	// reported as a Status; the error return is reserved for conditions
	// outside the protocol itself.
	Check(data []byte) (Status, error)
}
