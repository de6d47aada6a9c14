// Package domain contains the core domain model for the application.
//
// This package defines:
//   - Entities: statements passing through the gateway and their audit trail
//   - Value Objects: immutable snapshots such as pool statistics
//   - Domain Errors: business rule violation errors
//
// Rules for this package:
//   - No external dependencies except the standard library
//   - No infrastructure concerns (database, HTTP, etc.)
package domain
