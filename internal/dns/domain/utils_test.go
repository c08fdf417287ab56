package domain

import "testing"

func TestIsSubdomainOf(t *testing.T) {
	cases := []struct {
		name string
		of   string
		want bool
	}{
		{"www.example.com.", "example.com", true},
		{"www.example.com.", "example.com.", true},
		{"example.com.", "example.com.", true},
		{"example.com", "example.com.", true},
		{"sub.www.example.com.", "www.example.com.", true},
		{"evilexample.com.", "example.com.", false},
		{"example.org.", "example.com.", false},
		{"example.com.", "", true},
		{"anything.", "", true},
	}

	for _, tc := range cases {
		if got := IsSubdomainOf(tc.name, tc.of); got != tc.want {
			t.Errorf("IsSubdomainOf(%q, %q) = %v, want %v", tc.name, tc.of, got, tc.want)
		}
	}
}
