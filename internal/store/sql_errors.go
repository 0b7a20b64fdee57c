package store

import "fmt"

// ErrorClassification is the result type returned by
// [ErrorClassificator.Classify]. It names the kind of engine failure so the
// repositories can surface a driver-independent sentinel.
type ErrorClassification int

const (
	// Unclassified is the default for errors no classifier recognises.
	Unclassified ErrorClassification = iota

	// ForeignKeyViolation means a referenced parent row does not exist.
	ForeignKeyViolation

	// UniqueViolation means a primary key or unique index already holds the
	// inserted value.
	UniqueViolation

	// ConnectionFailure means the engine could not be reached.
	ConnectionFailure
)

// ErrorClassificator maps driver-specific errors to [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// classifyError wraps err with the sentinel matching its classification, or
// with fallback when the error is not recognised.
func classifyError(c ErrorClassificator, fallback, err error) error {
	if c != nil {
		switch c.Classify(err) {
		case ForeignKeyViolation:
			return fmt.Errorf("%w: %w", ErrForeignKeyViolation, err)
		case UniqueViolation:
			return fmt.Errorf("%w: %w", ErrDuplicateAssignment, err)
		case ConnectionFailure:
			return fmt.Errorf("%w: %w: %w", fallback, ErrConnection, err)
		}
	}

	return fmt.Errorf("%w: %w", fallback, err)
}
