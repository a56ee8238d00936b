package validate

import "testing"

func TestEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		email string
		want  bool
	}{
		{"a@x.com", true},
		{"Alice.Kumar@example.co.in", true},
		{"", false},
		{"no-at-sign", false},
		{"two@@x.com", false},
		{"spaces in@x.com", false},
		{"missing@tld", false},
	}
	for _, tc := range tests {
		if got := Email(tc.email); got != tc.want {
			t.Errorf("Email(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}

func TestPAN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pan  string
		want bool
	}{
		{"ABCDE1234F", true},
		{"abcde1234f", true},
		{"  ABCDE1234F  ", true},
		{"", false},
		{"ABCD1234F", false},
		{"ABCDE12345", false},
		{"1234ABCDEF", false},
		{"ABCDE1234FX", false},
	}
	for _, tc := range tests {
		if got := PAN(tc.pan); got != tc.want {
			t.Errorf("PAN(%q) = %v, want %v", tc.pan, got, tc.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	if got := NormalizeEmail("  A@X.Com "); got != "a@x.com" {
		t.Errorf("NormalizeEmail = %q, want %q", got, "a@x.com")
	}
}

func TestNormalizePAN(t *testing.T) {
	t.Parallel()

	if got := NormalizePAN(" abcde1234f "); got != "ABCDE1234F" {
		t.Errorf("NormalizePAN = %q, want %q", got, "ABCDE1234F")
	}
}
