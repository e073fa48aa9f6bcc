// Package accessconst contains constants shared between the Access contract
// and its clients.
package accessconst

// Access rights checkable via the hasAccess method.
const (
	RightRead     = 1
	RightValidate = 2
	RightShare    = 3
	RightComment  = 4
)

// Error strings thrown by the Access contract.
const (
	// ErrNotAuthorized is thrown when the invoker is neither the policy
	// owner nor an allowed contract.
	ErrNotAuthorized = "not authorized"
	// ErrNotFound is thrown on requests for missing policies or
	// capabilities.
	ErrNotFound = "not found"
	// ErrUnknownRight is thrown when the right selector is out of the
	// Right* range.
	ErrUnknownRight = "unknown access right"
)
