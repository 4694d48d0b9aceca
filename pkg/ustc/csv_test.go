package ustc

import (
	"reflect"
	"testing"
)

func TestSplitRow(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"empty fields", "a,,c", []string{"a", "", "c"}},
		{"quoted comma", `a,"b,c",d`, []string{"a", "b,c", "d"}},
		{"doubled quote", `a,"say ""hi""",c`, []string{"a", `say "hi"`, "c"}},
		{"quoted empty", `"",""`, []string{"", ""}},
		{"quote in middle", `a,b"c,d`, []string{"a", "bc", "d"}},
		{"unterminated quote", `a,"b,c`, []string{"a", "b,c"}},
		{"single field", "a", []string{"a"}},
		{"trailing comma", "a,", []string{"a", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitRow(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitRow(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	raw := "one\r\n\ntwo\n   \nthree"
	want := []string{"one", "two", "three"}
	if got := splitLines(raw); !reflect.DeepEqual(got, want) {
		t.Errorf("splitLines(%q) = %v, want %v", raw, got, want)
	}
	if got := splitLines(""); len(got) != 0 {
		t.Errorf("splitLines(\"\") = %v, want empty", got)
	}
}
