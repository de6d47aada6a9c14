// Package db provides a thin convenience layer over a pgx connection pool.
//
// This package is responsible for:
//   - Process-wide pool setup and teardown
//   - Acquire-and-release query and insert helpers
//   - Manual connection checkout with transaction control
//   - Positional placeholder generation
//
// Example usage:
//
//	if err := db.Setup(ctx, cfg.Database, log); err != nil {
//	    return err
//	}
//	defer db.Teardown()
//
//	rows, err := db.Query(ctx, "SELECT * FROM query_audit WHERE id = $1", 1)
//
// All connection pooling, protocol handling and transaction semantics are
// delegated to pgx; errors from the driver propagate unchanged.
package db
