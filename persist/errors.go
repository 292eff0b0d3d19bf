package persist

import (
	"errors"
	"strings"
)

var (
	// ErrIO reports that a project or export file could not be read or written.
	ErrIO = errors.New("persist: io failure")
	// ErrSyntax reports a document that is not valid JSON.
	ErrSyntax = errors.New("persist: malformed document")
	// ErrInvalid reports valid JSON that does not have the project's shape.
	ErrInvalid = errors.New("persist: invalid document")

	errMissingField = errors.New("missing field")
	errNull         = errors.New("unexpected null")
)

// PathError locates a structural decode failure inside the document.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *PathError) Unwrap() error { return e.Err }

// at prefixes err with a field name or index segment.
func at(segment string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PathError
	if errors.As(err, &pe) {
		sep := "."
		if strings.HasPrefix(pe.Path, "[") {
			sep = ""
		}
		return &PathError{Path: segment + sep + pe.Path, Err: pe.Err}
	}
	return &PathError{Path: segment, Err: err}
}
