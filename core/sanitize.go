package core

import "html"

// SanitizeText escapes HTML metacharacters in s when the profile enables XSS
// protection. With the flag off the raw string passes through untouched,
// reproducing the original's unsanitized rendering path.
func SanitizeText(s string, profile *Profile) string {
	if profile.XSSProtection {
		return html.EscapeString(s)
	}
	return s
}
