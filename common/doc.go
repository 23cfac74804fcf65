// Package common provides shared constants and utilities used
// throughout the Onyx Desktop application.
//
// This package serves as the foundation for cross-cutting concerns:
//
//   - Constants: application identity, default URLs, file names, window
//     geometry, and the script-injection backoff schedule
//   - Errors: sentinel errors for consistent error handling across packages
//   - Utils: configuration directory resolution and file helpers
//
// # Usage
//
// Import the package to access shared functionality:
//
//	import "github.com/onyx-dot-app/onyx-desktop/common"
//
//	// Use constants
//	url := common.DefaultServerURL
//
//	// Check errors
//	if errors.Is(err, common.ErrInvalidServerURL) {
//	    // Reject the input, stored config is untouched
//	}
//
// # Error Categories
//
// Sentinel errors fall into four categories with distinct handling:
// validation errors are rejected before any state mutation, persistence
// errors leave in-memory state mutated so a retry of the save alone is
// valid, platform errors are logged and the operation abandoned, and
// not-found errors trigger documented fallbacks instead of propagating.
package common
