package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"090-1234-5678", "+819012345678"},
		{"0312345678", "+81312345678"},
		{"+819012345678", "+819012345678"},
		{"  090-1234-5678  ", "+819012345678"},
		{"not-a-number", "not-a-number"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := NormalizeE164(tc.input); got != tc.want {
			t.Errorf("NormalizeE164(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"090-1234-5678", true},
		{"+819012345678", true},
		{"12", false},
		{"", false},
	}

	for _, tc := range tests {
		if got := IsValid(tc.input); got != tc.want {
			t.Errorf("IsValid(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
