package contract

import "errors"

// Typed engine errors. Callers match with errors.Is; engine code wraps these
// with fmt.Errorf("%w") to add context without losing the kind.
var (
	// ErrInsufficientData means too few customers or products exist for a
	// meaningful computation (e.g. fewer than 2 customers for RFM bucketing).
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInsufficientHistory means the revenue series is too short for
	// decomposition or forecasting.
	ErrInsufficientHistory = errors.New("insufficient history")

	// ErrInvalidConfiguration means bad bucket counts, a non-positive
	// horizon, or an out-of-range confidence level.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidWeights means the ensemble model weights do not sum to 1.
	ErrInvalidWeights = errors.New("invalid model weights")

	// ErrDataIntegrity means a malformed record reached the engine despite
	// upstream cleaning.
	ErrDataIntegrity = errors.New("data integrity violation")
)
