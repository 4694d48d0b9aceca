package zoterordf

import "testing"

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"entities", `&<>"'`, "&amp;&lt;&gt;&quot;&apos;"},
		{"ampersand escaped once", "a&amp;b", "a&amp;amp;b"},
		{"control characters removed", "a\x00b\x01c\x1fd", "abcd"},
		{"whitespace survives", "a\tb\nc\rd", "a\tb\nc\rd"},
		{"plain text untouched", "Dürer, Albrecht", "Dürer, Albrecht"},
		{"mixed", "x\x00&\x0b<", "x&amp;&lt;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escape(tt.in); got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"range boundaries kept", "abc \ufffd\ud7ff", "abc \ufffd\ud7ff"},
		{"c0 controls removed", "a\x02b\x0c", "ab"},
		{"ffff removed", "a\uffffb", "ab"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripInvalid(tt.in); got != tt.want {
				t.Errorf("StripInvalid(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
