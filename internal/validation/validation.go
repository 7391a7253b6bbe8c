package validation

import "strings"

// Field validators return a human readable message, empty when the value is
// acceptable. Handlers surface the messages inline per field.

func Name(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Name is required"
	}
	return ""
}

func City(s string) string {
	if strings.TrimSpace(s) == "" {
		return "City is required"
	}
	return ""
}

func Email(s string) string {
	if s == "" {
		return "Email is required"
	}

	if !matchesEmailShape(s) {
		return "Please enter a valid email address"
	}

	domain := strings.ToLower(s[strings.IndexByte(s, '@')+1:])
	if strings.Contains(domain, ".") {
		if strings.Contains(domain, "..") ||
			strings.HasPrefix(domain, ".") ||
			strings.HasSuffix(domain, ".") {
			return "Invalid email domain format"
		}
	}

	if strings.Contains(s, "..") ||
		strings.HasPrefix(s, ".") ||
		strings.HasSuffix(s, ".") {
		return "Invalid email format"
	}

	return ""
}

// matchesEmailShape checks for local@domain.tld: a non-empty run without
// spaces or "@", a single "@", then a domain where some dot has at least one
// character on each side. Leading or trailing dots around that run pass the
// shape check and are reported as domain-format problems instead.
func matchesEmailShape(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at != strings.LastIndexByte(s, '@') {
		return false
	}

	local, domain := s[:at], s[at+1:]
	if strings.ContainsAny(local, " \t") {
		return false
	}

	first := strings.IndexByte(domain, '.')
	last := strings.LastIndexByte(domain, '.')
	if last <= 0 || first >= len(domain)-1 {
		return false
	}

	return !strings.ContainsAny(domain, " \t")
}
