package utils

import "testing"

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "Warehouse 1", want: "Warehouse 1"},
		{name: "trims", input: "  Quang  ", want: "Quang"},
		{name: "escapes html", input: `<script>alert(1)</script>`, want: "&lt;script&gt;alert(1)&lt;/script&gt;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeString(tt.input); got != tt.want {
				t.Errorf("SanitizeString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeText(t *testing.T) {
	got := SanitizeText("line one\nline two\x00\x07")
	if got != "line one\nline two" {
		t.Errorf("SanitizeText() = %q, want control characters stripped", got)
	}
}

func TestSanitizeCargoID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain id", input: "CMBO-240607-1111", want: "CMBO-240607-1111"},
		{name: "trims", input: " C-1 ", want: "C-1"},
		{name: "strips path characters", input: "../C-1/..", want: "C-1"},
		{name: "keeps underscores", input: "C_1", want: "C_1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeCargoID(tt.input); got != tt.want {
				t.Errorf("SanitizeCargoID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
