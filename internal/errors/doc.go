// Package errors provides typed error values for the Ngaio application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Project errors: Project state issues (ErrProjectNotInitialized)
//   - Environment errors: Credential resolution issues (ErrNoEnvironments)
//   - Compliance errors: Mapping, evidence, and risk issues (ErrRiskNotFound)
//   - Export errors: Evidence packaging issues (ErrFileNotFound)
//
// # Usage
//
// Return errors from internal packages:
//
//	if projectPath == "" {
//	    return nil, errors.ErrProjectNotInitialized
//	}
//
// Handle errors in the CLI layer:
//
//	records, err := evidence.Filter(all, opts)
//	if errors.Is(err, kerrors.ErrInvalidDateFormat) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("loading mapping %s: %w", path, errors.ErrMappingNotFound)
package errors
