package internal

import "strings"

var logSanitizer = strings.NewReplacer("\n", "", "\r", "", "\t", " ")

// SanitizeString removes control characters that would allow log forging.
func SanitizeString(s string) string {
	return logSanitizer.Replace(s)
}
