package document

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// placeholderPattern is the authoring syntax: "{{", optional whitespace,
	// one or more Unicode letters, digits or underscores, optional
	// whitespace, "}}". placeholderName is the same character class alone.
	placeholderPattern = regexp.MustCompile(`\{\{\s*([\p{L}\p{N}_]+)\s*\}\}`)
	placeholderName    = regexp.MustCompile(`^[\p{L}\p{N}_]+$`)
)

// ScanPlaceholders returns the distinct placeholder names found in text, in
// order of first appearance. Tokens with other characters inside the braces
// (such as "{{not-valid}}") are ignored.
func ScanPlaceholders(text string) []string {
	if text == "" {
		return nil
	}

	var names []string
	seen := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Render replaces every "{{ name }}" token whose name has an entry in values
// with that value, inserted literally. Tokens without an entry are left as
// they are. Substitution is a single pass, so a value that itself contains a
// placeholder is not expanded again.
func Render(body string, values map[string]string) string {
	if body == "" || len(values) == 0 {
		return body
	}

	return placeholderPattern.ReplaceAllStringFunc(body, func(token string) string {
		m := placeholderPattern.FindStringSubmatch(token)
		if value, ok := values[m[1]]; ok {
			return value
		}
		return token
	})
}

// IsPlaceholderName reports whether name can appear inside "{{ }}".
func IsPlaceholderName(name string) bool {
	return placeholderName.MatchString(name)
}

// InferLabel derives a display label from a placeholder name:
// "employee_full_name" becomes "Employee Full Name". Every run of letters
// is title-cased on its own, so "a1b" becomes "A1B".
func InferLabel(name string) string {
	caser := cases.Title(language.English)
	words := strings.ReplaceAll(name, "_", " ")

	var b strings.Builder
	run := -1
	for i, r := range words {
		if unicode.IsLetter(r) {
			if run < 0 {
				run = i
			}
			continue
		}
		if run >= 0 {
			b.WriteString(caser.String(words[run:i]))
			run = -1
		}
		b.WriteRune(r)
	}
	if run >= 0 {
		b.WriteString(caser.String(words[run:]))
	}
	return b.String()
}

// PlaceholderTag returns the canonical "{{name}}" token for name.
func PlaceholderTag(name string) string {
	if name == "" {
		return ""
	}
	return "{{" + name + "}}"
}
