package db

import "strings"

// IsUniqueViolation reports whether err is a unique constraint violation.
// With a constraint name it matches only that constraint; without one it
// matches any duplicate-key error. Covers both the Postgres and the sqlite
// (tests) message shapes.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" && strings.Contains(msg, constraintName) {
		return true
	}
	if strings.Contains(msg, "duplicate key value") {
		return true
	}
	return strings.Contains(msg, "UNIQUE constraint failed")
}
