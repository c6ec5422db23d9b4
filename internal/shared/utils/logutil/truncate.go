// Package logutil holds helpers for keeping log and error text bounded.
package logutil

import "unicode/utf8"

// TruncateForLog cuts s to at most maxLen bytes and appends "..." when
// anything was removed. The cut never splits a UTF-8 sequence.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}

	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
