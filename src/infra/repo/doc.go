// Package repo contains the database-backed implementations of the core
// ports.
//
// Everything here routes through the convenience layer in src/infra/db rather
// than holding its own pool handle, so the package doubles as the production
// exerciser of that layer's helpers (Query, Insert, Placeholders, manual
// connections).
package repo
