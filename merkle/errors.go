package merkle

import "errors"

// ErrProofInvalid is the sentinel every structural or verification failure
// in this package wraps; verify.ProofInvalid{GIndex} is built from it at the
// glue boundary.
var ErrProofInvalid = errors.New("merkle: proof invalid")

// ErrUnknownField is returned by GIndexOf when a path element names a field
// or index that the descriptor does not have.
var ErrUnknownField = errors.New("merkle: unknown field in path")
