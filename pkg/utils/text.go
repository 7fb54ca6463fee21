// Package utils holds small helpers shared across packages: text trimming
// and logger construction.
package utils

// Truncate caps s at maxLen bytes, appending "..." when anything was cut.
// A maxLen of zero or less disables truncation.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
