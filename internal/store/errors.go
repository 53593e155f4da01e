package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when a new user cannot be created
	// because the username is taken.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrEmailAlreadyExists is returned when a new user cannot be created
	// because the email is already registered.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrFileNotFound is returned when no registry row matches the lookup.
	// Ownership is part of most lookups, so a foreign row is reported the
	// same way as a missing one.
	ErrFileNotFound = errors.New("file was not found")

	// ErrBlobNotFound is returned by [BlobStorage] when no blob exists under
	// the requested key.
	ErrBlobNotFound = errors.New("blob was not found")

	// ErrInvalidStorageKey is returned by [BlobStorage] for keys that could
	// escape the storage root.
	ErrInvalidStorageKey = errors.New("invalid storage key")
)

// Low-level operation errors. These are returned (or wrapped) by repository
// methods when a SQL-level or I/O operation fails before any domain logic can
// be applied.
var (
	// ErrUnsupportedDSN is returned when the configured DSN selects no known driver.
	ErrUnsupportedDSN = errors.New("unsupported database dsn")

	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or a statement
	// with a RETURNING clause fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (UPDATE, DELETE) without a result set fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning fails during multi-row
	// iteration, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrWritingBlob is returned when the blob store cannot persist bytes.
	ErrWritingBlob = errors.New("failed to write blob")

	// ErrReadingBlob is returned when the blob store cannot serve bytes.
	ErrReadingBlob = errors.New("failed to read blob")

	// ErrDeletingBlob is returned when the blob store cannot remove bytes.
	ErrDeletingBlob = errors.New("failed to delete blob")

	// ErrListingBlobs is returned when the blob store cannot enumerate keys.
	ErrListingBlobs = errors.New("failed to list blobs")
)
