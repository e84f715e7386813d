package ssz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethlightclient/verifier/primitives"
)

// ErrUnknownType is returned by the schema registry when a (category, fork,
// chain) combination has no descriptor.
var ErrUnknownType = errors.New("unknown ssz type")

// PathError records a decode/encode failure with the dot-separated path of
// descriptor names from the root to the offending field, matching the
// InvalidEncoding{path, reason} shape.
type PathError struct {
	Path   []string
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid encoding at %s: %s", strings.Join(e.Path, "."), e.Reason)
}

func (e *PathError) Unwrap() error {
	return primitives.ErrInvalidEncoding
}

func invalidf(path []string, format string, args ...interface{}) error {
	return &PathError{Path: append([]string{}, path...), Reason: fmt.Sprintf(format, args...)}
}

func withField(path []string, name string) []string {
	return append(append([]string{}, path...), name)
}
