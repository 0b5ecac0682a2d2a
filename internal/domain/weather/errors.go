package weather

import (
	"errors"
	"fmt"
)

// ValidationKind classifies why a response document was rejected.
type ValidationKind string

const (
	// KindMissingField means a required key is absent at the stated path.
	KindMissingField ValidationKind = "missing_field"
	// KindWrongType means the value is present but of an incompatible type.
	KindWrongType ValidationKind = "wrong_type"
	// KindOutOfRange means a correctly typed number is outside its legal domain.
	KindOutOfRange ValidationKind = "out_of_range"
	// KindEmptyCollection means a required non-empty array is empty.
	KindEmptyCollection ValidationKind = "empty_collection"
)

// ValidationError reports the first violation found while walking a response
// document. Path is dotted with array indices, e.g. "list[0].main.aqi".
type ValidationError struct {
	Kind   ValidationKind
	Path   string
	Detail string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindMissingField:
		return fmt.Sprintf("missing required key: '%s'", e.Path)
	case KindEmptyCollection:
		return fmt.Sprintf("'%s' array is empty", e.Path)
	default:
		if e.Path == "" {
			return e.Detail
		}
		return fmt.Sprintf("'%s': %s", e.Path, e.Detail)
	}
}

// IsValidationKind reports whether err wraps a ValidationError of the given kind.
func IsValidationKind(err error, kind ValidationKind) bool {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Kind == kind
	}
	return false
}

func missingField(path string) *ValidationError {
	return &ValidationError{Kind: KindMissingField, Path: path}
}

func wrongType(path, want string, got any) *ValidationError {
	return &ValidationError{
		Kind:   KindWrongType,
		Path:   path,
		Detail: fmt.Sprintf("expected %s, got %T", want, got),
	}
}

func outOfRange(path, detail string) *ValidationError {
	return &ValidationError{Kind: KindOutOfRange, Path: path, Detail: detail}
}

func emptyCollection(path string) *ValidationError {
	return &ValidationError{Kind: KindEmptyCollection, Path: path}
}
