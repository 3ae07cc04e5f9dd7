//go:build !cgo

package store

// Without cgo the go-sqlite3 driver is a stub whose Open always fails,
// so no sqlite error can reach the store; sqlite3.Error itself is only
// defined in the driver's cgo build.
func isSQLiteUniqueViolation(error) bool { return false }
