package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserNotFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrUserNotFound = errors.New("user was not found")

	// ErrRoleNotFound is returned when a query expected to match a role
	// record produces an empty result set.
	ErrRoleNotFound = errors.New("role was not found")

	// ErrNothingCreated is returned when an INSERT completes but yields no
	// generated identity.
	ErrNothingCreated = errors.New("nothing was created")

	// ErrConnection is returned when the storage engine cannot be reached.
	ErrConnection = errors.New("storage connection error")

	// ErrUnsupportedDriver is returned by [NewGateway] for an unknown driver.
	ErrUnsupportedDriver = errors.New("unsupported storage driver")

	// ErrInitializingSchema is returned when applying migrations or seeding
	// demonstration data fails.
	ErrInitializingSchema = errors.New("error initializing schema")
)

// Constraint violations reported by the storage engine. Both specific errors
// wrap [ErrConstraintViolation].
var (
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrForeignKeyViolation is returned when a statement references a user
	// or role that does not exist.
	ErrForeignKeyViolation = fmt.Errorf("%w: foreign key", ErrConstraintViolation)

	// ErrDuplicateAssignment is returned when a (user, role) pair is already
	// assigned.
	ErrDuplicateAssignment = fmt.Errorf("%w: duplicate assignment", ErrConstraintViolation)
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
