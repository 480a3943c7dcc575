package main

import (
	"fmt"
	"os"
)

// exitWithError writes an error message to stderr and exits with code.
func exitWithError(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(code)
}

// gigabytes converts a byte count to GB for display.
func gigabytes(n int64) float64 {
	return float64(n) / (1 << 30)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
