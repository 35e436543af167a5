package sanitize

import "testing"

func TestHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Hello there", "Hello there"},
		{"script tag", "<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"quotes", `say "hi" it's`, "say &quot;hi&quot; it&#39;s"},
		{"ampersand first", "a & b", "a &amp; b"},
		{"existing entity escaped once", "&lt;", "&amp;lt;"},
		{"empty", "", ""},
		{"unicode kept", "café ☕", "café ☕"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTML(tt.in); got != tt.want {
				t.Errorf("HTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
