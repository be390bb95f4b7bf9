package domain

import "errors"

// Sentinel errors for the taxonomy in spec §7. Components compare against
// these with errors.Is; PhaseError wraps one of them with context for
// status() responses.
var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrInsufficientData       = errors.New("insufficient data")
	ErrInvalidCost            = errors.New("invalid cost matrix")
	ErrPhaseBusy              = errors.New("phase is already running")
	ErrPhasePreconditionUnmet = errors.New("upstream phase is not completed")
	ErrCanceled               = errors.New("canceled")
	ErrTimeout                = errors.New("timeout")
	ErrStorageUnavailable     = errors.New("storage unavailable")
)

// Participant/problem validation errors.
var (
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidRoleWeight = errors.New("role weights must be non-negative and sum to at most 1")
	ErrInvalidSkillLevel = errors.New("skill level must be between 0 and 5")
	ErrInvalidTeamSize   = errors.New("team size must be between 2 and 10")
)

// PhaseErrorKind names one of the error taxonomy members for structured
// reporting through PhaseStatus.Error.
type PhaseErrorKind string

const (
	KindInvalidInput           PhaseErrorKind = "InvalidInput"
	KindInsufficientData       PhaseErrorKind = "InsufficientData"
	KindInvalidCost            PhaseErrorKind = "InvalidCost"
	KindPhaseBusy              PhaseErrorKind = "PhaseBusy"
	KindPhasePreconditionUnmet PhaseErrorKind = "PhasePreconditionUnmet"
	KindCanceled               PhaseErrorKind = "Canceled"
	KindTimeout                PhaseErrorKind = "Timeout"
	KindStorageUnavailable     PhaseErrorKind = "StorageUnavailable"
)

// PhaseError is the structured failure record a phase status carries. It
// never replaces the underlying sentinel error — Unwrap exposes it so
// callers can keep using errors.Is.
type PhaseError struct {
	Kind        PhaseErrorKind
	Message     string
	Diagnostics map[string]int
	cause       error
}

func NewPhaseError(kind PhaseErrorKind, cause error, message string) *PhaseError {
	return &PhaseError{Kind: kind, Message: message, cause: cause}
}

func (e *PhaseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return string(e.Kind)
}

func (e *PhaseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// WithDiagnostics attaches diagnostic counts (e.g. unassigned participants)
// and returns the same error for chaining.
func (e *PhaseError) WithDiagnostics(diag map[string]int) *PhaseError {
	e.Diagnostics = diag
	return e
}

func kindForErr(err error) PhaseErrorKind {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrInsufficientData):
		return KindInsufficientData
	case errors.Is(err, ErrInvalidCost):
		return KindInvalidCost
	case errors.Is(err, ErrPhaseBusy):
		return KindPhaseBusy
	case errors.Is(err, ErrPhasePreconditionUnmet):
		return KindPhasePreconditionUnmet
	case errors.Is(err, ErrCanceled):
		return KindCanceled
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	case errors.Is(err, ErrStorageUnavailable):
		return KindStorageUnavailable
	default:
		return KindInvalidInput
	}
}

// WrapPhaseError classifies a plain error against the known sentinels and
// wraps it as a PhaseError, so callers that only have an `error` in hand
// (e.g. from a repository call) can still produce a well-typed status.
func WrapPhaseError(err error) *PhaseError {
	if err == nil {
		return nil
	}
	var pe *PhaseError
	if errors.As(err, &pe) {
		return pe
	}
	return NewPhaseError(kindForErr(err), err, err.Error())
}
