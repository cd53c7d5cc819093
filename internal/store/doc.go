// Package store persists job history in SQLite. Every extraction run is
// recorded as a job so operators can list past runs, inspect failures, and
// find where output files landed.
package store
