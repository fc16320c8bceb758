package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"salve_regina", "salve_regina"},
		{"motet: part/one", "motet- part-one"},
		{"  kyrie? ", "kyrie"},
		{"<>|", ""},
	}
	for _, tt := range tests {
		if got := SanitizeFileName(tt.input); got != tt.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Salve Regina", "salve_regina"},
		{"", "unknown"},
		{"__--", "unknown"},
		{"Bar-3", "bar-3"},
	}
	for _, tt := range tests {
		if got := SanitizeToken(tt.input); got != tt.want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDisplayTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"salve_regina", "Salve Regina"},
		{"kyrie", "Kyrie"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DisplayTitle(tt.input); got != tt.want {
			t.Errorf("DisplayTitle(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
