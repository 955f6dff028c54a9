package importer

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrRepositoryRequired is returned when no template repository is given
	ErrRepositoryRequired = errors.New("template repository is required")

	// ErrInvalidBatchSize is returned when the batch size is <= 0
	ErrInvalidBatchSize = errors.New("batch size must be greater than 0")

	// ErrInvalidNumPoints is returned when the sample count is below 2
	ErrInvalidNumPoints = errors.New("sample count must be at least 2")
)
