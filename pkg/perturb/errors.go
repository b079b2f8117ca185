package perturb

import "errors"

// Common perturbation errors. Callers should match them with errors.Is, since
// the returned errors are wrapped with the offending values.
var (
	// ErrUnknownPerturbation is returned when a Perturber is configured with an unrecognized perturbation.
	ErrUnknownPerturbation = errors.New("perturb: unknown perturbation")

	// ErrArgumentMismatch is returned when targets are supplied but do not line up with the inputs.
	ErrArgumentMismatch = errors.New("perturb: argument mismatch")

	// ErrInvalidArgument is returned for malformed arguments, e.g. a similarity
	// strategy invoked without a query or a target.
	ErrInvalidArgument = errors.New("perturb: invalid argument")

	// ErrInsufficientCandidates is returned when fewer eligible documents exist than must be selected.
	ErrInsufficientCandidates = errors.New("perturb: insufficient candidates")

	// ErrMissingCapability is returned when the configuration needs an embedder,
	// translator or sentence splitter that was not supplied.
	ErrMissingCapability = errors.New("perturb: missing capability")
)

// IsUnknownPerturbationError checks if the error is an unknown perturbation error.
func IsUnknownPerturbationError(err error) bool {
	return errors.Is(err, ErrUnknownPerturbation)
}

// IsArgumentMismatchError checks if the error is an argument mismatch error.
func IsArgumentMismatchError(err error) bool {
	return errors.Is(err, ErrArgumentMismatch)
}

// IsInvalidArgumentError checks if the error is an invalid argument error.
func IsInvalidArgumentError(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsInsufficientCandidatesError checks if the error is an insufficient candidates error.
func IsInsufficientCandidatesError(err error) bool {
	return errors.Is(err, ErrInsufficientCandidates)
}
