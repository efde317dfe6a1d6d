package merge

import "errors"

// Sentinel errors returned by the writer and the clause generators.
// Callers should test them with errors.Is.
var (
	// ErrMissingConfiguration is returned by SQL when the target table,
	// source relation or join condition has not been provided.
	ErrMissingConfiguration = errors.New("merge: missing required configuration")

	// ErrNoActions is returned by SQL when no WHEN branch has been
	// recorded since construction or the last successful render.
	ErrNoActions = errors.New("merge: no merge actions provided")

	// ErrLengthMismatch is returned by PartitionCondition when the
	// partition column and value lists differ in length.
	ErrLengthMismatch = errors.New("merge: partition columns and values length mismatch")
)
