package errors

import "errors"

// Project state errors indicate issues with project configuration or initialization.
var (
	// ErrProjectNotInitialized indicates the project has not been set up with Ngaio.
	ErrProjectNotInitialized = errors.New("project has not been initialized")

	// ErrInvalidProjectConfig indicates the project configuration is malformed or corrupt.
	ErrInvalidProjectConfig = errors.New("project configuration is invalid")
)

// Environment errors indicate issues resolving target environments.
var (
	// ErrNoEnvironments indicates no environment profiles are configured.
	ErrNoEnvironments = errors.New("no environments configured")
)

// Compliance errors indicate issues with mappings, evidence, and risks.
var (
	// ErrMappingNotFound indicates the control mapping file could not be located.
	ErrMappingNotFound = errors.New("control mapping file not found")

	// ErrRiskNotFound indicates the specified risk entry could not be found.
	ErrRiskNotFound = errors.New("risk entry not found")

	// ErrInvalidStatus indicates a risk treatment status outside the allowed set.
	ErrInvalidStatus = errors.New("invalid risk treatment status")

	// ErrInvalidDateFormat indicates a date filter that is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// Export errors indicate issues packaging evidence for distribution.
var (
	// ErrNoFilesFound indicates no files matched the export manifest.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrFileNotFound indicates a manifest file could not be located.
	ErrFileNotFound = errors.New("file not found")
)

// Input errors indicate malformed user-supplied data.
var (
	// ErrEmptyPayload indicates a trigger payload that is empty or whitespace.
	ErrEmptyPayload = errors.New("trigger payload is empty")

	// ErrInvalidPayload indicates a trigger payload that is not valid JSON.
	ErrInvalidPayload = errors.New("trigger payload is not valid JSON")
)
