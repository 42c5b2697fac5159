package lazy

import (
	"errors"
	"fmt"
	"strings"
)

// ── Resolution errors ────────────────────────────────────────────────────────

// ErrorKind categorizes resolution failures.
type ErrorKind string

const (
	// KindImportFailed indicates the underlying module import failed.
	KindImportFailed ErrorKind = "IMPORT_FAILED"

	// KindAttrMissing indicates a step along the attribute chain does not
	// exist on the resolved value.
	KindAttrMissing ErrorKind = "ATTR_MISSING"
)

// ResolutionError reports a failed proxy resolution. The original failure is
// preserved as the cause.
type ResolutionError struct {
	// Kind identifies the failure category.
	Kind ErrorKind

	// Path is the module path of the proxy.
	Path string

	// Chain is the attribute chain up to and including the failing name
	// (KindAttrMissing only).
	Chain []string

	// Missing is the attribute that could not be found (KindAttrMissing only).
	Missing string

	// Cause is the underlying importer or lookup error.
	Cause error
}

func (e *ResolutionError) Error() string {
	switch e.Kind {
	case KindImportFailed:
		return fmt.Sprintf("lateimport: cannot import module %q: %v", e.Path, e.Cause)
	case KindAttrMissing:
		return fmt.Sprintf("lateimport: module %q has no attribute path %q",
			e.Path, strings.Join(e.Chain, "."))
	}
	return fmt.Sprintf("lateimport: resolution of %q failed: %v", e.Path, e.Cause)
}

func (e *ResolutionError) Unwrap() error { return e.Cause }

// IsImportFailed returns true if err is a resolution error caused by a
// failed import. Uses errors.As to handle wrapped errors.
func IsImportFailed(err error) bool {
	var re *ResolutionError
	return errors.As(err, &re) && re.Kind == KindImportFailed
}

// IsAttrMissing returns true if err is a resolution error caused by a
// missing attribute along the chain.
func IsAttrMissing(err error) bool {
	var re *ResolutionError
	return errors.As(err, &re) && re.Kind == KindAttrMissing
}
