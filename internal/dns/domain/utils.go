package domain

import "strings"

// IsSubdomainOf reports whether name lies within the zone rooted at of --
// that is, whether of is a label-wise suffix of name. Both names are
// compared case-insensitively and trailing dots are ignored, so
// IsSubdomainOf("www.example.com.", "example.com") and
// IsSubdomainOf("example.com.", "example.com.") are both true. It is used
// by the resolver's referral logic to find the first NS record, in wire
// order, that covers the name being resolved.
func IsSubdomainOf(name, of string) bool {
	name = strings.ToLower(strings.TrimSuffix(name, "."))
	of = strings.ToLower(strings.TrimSuffix(of, "."))
	if of == "" {
		return true
	}
	if name == of {
		return true
	}
	return strings.HasSuffix(name, "."+of)
}
