package exporter

import "strings"

// DefaultFilename is used when the product name yields no usable slug.
const DefaultFilename = "landing-page.html"

// Filename derives a filesystem-safe .html name from a product name.
func Filename(productName string) string {
	slug := Slugify(productName)
	if slug == "" {
		return DefaultFilename
	}
	return slug + ".html"
}

// Slugify lowercases s and collapses every run of characters outside
// [a-z0-9] into a single hyphen.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
