// Package redact masks secrets before they reach a log line.
package redact

import (
	"regexp"
	"strings"
)

// Redacted replaces any value considered sensitive.
const Redacted = "[REDACTED]"

// SensitivePatterns match field names, locator keys or query parameters whose
// values must never be logged.
var SensitivePatterns = []string{
	// Password fields
	`(?i)password`,
	`(?i)passwd`,
	`(?i)pwd`,
	`(?i)secret`,

	// Tokens and sessions
	`(?i)token`,
	`(?i)session`,
	`(?i)auth`,
	`(?i)otp`,

	// Keys
	`(?i)api_?key`,
	`(?i)private_key`,
	`(?i)credential`,
}

var sensitive = compile(SensitivePatterns)

func compile(patterns []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(p)
	}
	return res
}

// IsSensitiveKey reports whether key names a secret.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)

	for _, re := range sensitive {
		if re.MatchString(keyLower) {
			return true
		}
	}

	return false
}

// Value returns value, or Redacted when key names a secret.
func Value(key, value string) string {
	if IsSensitiveKey(key) {
		return Redacted
	}
	return value
}
