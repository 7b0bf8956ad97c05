package physics

import "errors"

// Errors returned by setup-time builders. They are always wrapped with context,
// so callers should match them with errors.Is.
var (
	// ErrInvalidParameter reports an out-of-range physical constant (negative mass,
	// restitution outside [0,1], negative friction) or a malformed shape argument.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrUnknownHandle reports a body, material or visual handle that is not in its store.
	ErrUnknownHandle = errors.New("unknown handle")
	// ErrUnsupportedContactPair reports a shape combination the contact solver cannot resolve.
	ErrUnsupportedContactPair = errors.New("unsupported contact pair")
)
