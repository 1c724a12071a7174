package signin

import "errors"

// Every failure in the flow is terminal for the request; nothing here is
// retried. The exchange and profile-fetch kinds live in the github package
// and flow through unchanged.
var (
	// ErrNotConfigured means the GitHub app registration is incomplete.
	ErrNotConfigured = errors.New("github oauth not configured")
	// ErrSessionRead means the session store could not be read.
	ErrSessionRead = errors.New("session read failed")
	// ErrSessionWrite means the session store could not be written.
	ErrSessionWrite = errors.New("session write failed")
	// ErrStateAbsent means the callback arrived with no pending sign-in.
	ErrStateAbsent = errors.New("no pending sign-in state")
	// ErrStateMismatch means the callback state differs from the stored one.
	ErrStateMismatch = errors.New("sign-in state mismatch")
)
