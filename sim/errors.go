package sim

import "errors"

var (
	// ErrInvalidProblemData indicates a ProblemBatch that cannot produce a
	// meaningful episode: mismatched shapes, negative or non-finite values,
	// or a customer whose demand exceeds vehicle capacity.
	ErrInvalidProblemData = errors.New("sim: invalid problem data")

	// ErrShapeMismatch indicates a selection whose [B][M] shape disagrees
	// with the environment's batch and trajectory counts.
	ErrShapeMismatch = errors.New("sim: shape mismatch")

	// ErrOutOfRange indicates a selected node index outside [0, P].
	ErrOutOfRange = errors.New("sim: node index out of range")

	// ErrNotReset indicates Step or Observe was called before Reset.
	ErrNotReset = errors.New("sim: environment not reset")

	// ErrStepLimit indicates a rollout exceeded its step bound without every
	// trajectory finishing.
	ErrStepLimit = errors.New("sim: step limit exceeded")
)
