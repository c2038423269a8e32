package ui

import "testing"

func TestSplitAddress(t *testing.T) {
	cases := []struct {
		in, host, port string
	}{
		{"example.net:9000", "example.net", "9000"},
		{"[::1]:7373", "::1", "7373"},
		{"nonsense", "localhost", "7373"},
		{":7373", "localhost", "7373"},
	}
	for _, c := range cases {
		host, port := splitAddress(c.in)
		if host != c.host || port != c.port {
			t.Errorf("splitAddress(%q) = %q, %q", c.in, host, port)
		}
	}
}
