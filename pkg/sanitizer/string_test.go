package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "Boardroom", want: "Boardroom"},
		{name: "surrounding whitespace", input: "  Boardroom  ", want: "Boardroom"},
		{name: "internal runs collapsed", input: "Board   Room", want: "Board Room"},
		{name: "tabs and newlines", input: "\tBoard\n Room ", want: "Board Room"},
		{name: "whitespace only", input: "   \t\n", want: ""},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName(" Conference  Room A "); got != "Conference Room A" {
		t.Errorf("NormalizeName = %q", got)
	}
}
