package sim

import "errors"

// Engine error taxonomy. Validation and precondition errors are
// expected and surfaced to the caller verbatim; they drive UI
// feedback. ErrNarrativeUnavailable is retryable: the engine
// guarantees no state mutated when it is returned. ErrInvariant
// marks should-never-happen conditions and aborts the operation
// without partial mutation.
var (
	// Validation errors.
	ErrUnknownAction   = errors.New("unknown action")
	ErrUnknownIssue    = errors.New("unknown issue")
	ErrUnknownRegion   = errors.New("unknown region")
	ErrUnknownVariable = errors.New("unknown variable")
	ErrInvalidChoice   = errors.New("invalid resolution choice")
	ErrPermissionDenied = errors.New("permission denied")
	ErrRegionRequired  = errors.New("action requires a target region")

	// Precondition errors.
	ErrOnCooldown      = errors.New("action on cooldown")
	ErrExhaustedUses   = errors.New("action uses exhausted")
	ErrNoActiveIssue   = errors.New("no active issue")
	ErrStaleResolution = errors.New("stale resolution")
	ErrGameNotActive   = errors.New("game is not active")

	// External dependency errors.
	ErrNarrativeUnavailable = errors.New("narrative service unavailable")

	// Invariant violations.
	ErrInvariant = errors.New("invariant violation")
)
