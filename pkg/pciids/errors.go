package pciids

import (
	"errors"
	"fmt"
)

// Structural errors. A database that produces one of these is rejected as a
// whole; no partial table is returned.
var (
	ErrNoOpenVendor      = errors.New("device or subsystem line before any vendor")
	ErrNoCurrentDevice   = errors.New("subsystem line without a current device")
	ErrNoOpenClass       = errors.New("subclass or prog-if line before any class")
	ErrNoCurrentSubclass = errors.New("prog-if line without a current subclass")
	ErrDuplicateVendor   = errors.New("duplicate vendor id")
	ErrDuplicateClass    = errors.New("duplicate class id")
	ErrDanglingReference = errors.New("back-reference does not resolve")
)

// Snapshot errors.
var (
	ErrSnapshotVersion = errors.New("unsupported snapshot version")
	ErrSnapshotCorrupt = errors.New("snapshot digest mismatch")
)

// ParseError reports a structural error together with the 1-based number of
// the line that caused it.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pci.ids line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
