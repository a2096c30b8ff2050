package model

import (
	"strings"
	"testing"
)

func TestCanonicalSWID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "{12345678-ABCD-ABCD-ABCD-123456789012}", expected: "{12345678-ABCD-ABCD-ABCD-123456789012}"},
		{input: "12345678-abcd-abcd-abcd-123456789012", expected: "{12345678-ABCD-ABCD-ABCD-123456789012}"},
		{input: "%7B12345678-ABCD-ABCD-ABCD-123456789012%7D", expected: "{12345678-ABCD-ABCD-ABCD-123456789012}"},
		{input: "  {12345678-abcd-ABCD-abcd-123456789012}  ", expected: "{12345678-ABCD-ABCD-ABCD-123456789012}"},
	}

	for _, tc := range tests {
		got, err := CanonicalSWID(tc.input)
		if err != nil {
			t.Errorf("CanonicalSWID(%q) unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.expected {
			t.Errorf("CanonicalSWID(%q) expected %q, got %q", tc.input, tc.expected, got)
		}
	}
}

func TestCanonicalSWID_invalid(t *testing.T) {
	for _, input := range []string{"", "not-a-swid", "{12345678-ABCD}", "12345678ABCDABCDABCD123456789012"} {
		if got, err := CanonicalSWID(input); err == nil {
			t.Errorf("CanonicalSWID(%q) expected an error, got %q", input, got)
		}
	}
}

func TestSWIDHash(t *testing.T) {
	canonical := "{12345678-ABCD-ABCD-ABCD-123456789012}"
	h := SWIDHash(canonical)

	if len(h) != 64 {
		t.Errorf("expected a 64-char hex digest, got %d chars", len(h))
	}
	if strings.ToLower(h) != h {
		t.Errorf("expected lower-case hex, got %q", h)
	}
	if h != SWIDHash(canonical) {
		t.Errorf("hash is not deterministic")
	}
	if h == SWIDHash("{87654321-DCBA-DCBA-DCBA-210987654321}") {
		t.Errorf("different SWIDs must not collide")
	}
}
