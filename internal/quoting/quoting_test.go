package quoting

import "testing"

func TestDoubleQuote(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "users", `"users"`},
		{"empty", "", `""`},
		{"with double quote", `us"ers`, `"us""ers"`},
		{"multiple double quotes", `a"b"c`, `"a""b""c"`},
		{"only double quote", `"`, `""""`},
		{"with space", "my table", `"my table"`},
		{"injection attempt", `users"."passwords`, `"users"".""passwords"`},
		{"backslash", `us\ers`, `"us\ers"`},
		{"unicode", "café", "\"café\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DoubleQuote(tt.input)
			if got != tt.want {
				t.Errorf("DoubleQuote(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBacktick(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "users", "`users`"},
		{"empty", "", "``"},
		{"with backtick", "us`ers", "`us``ers`"},
		{"multiple backticks", "a`b`c", "`a``b``c`"},
		{"only backtick", "`", "````"},
		{"with space", "my table", "`my table`"},
		{"injection attempt", "users`.`passwords", "`users``.``passwords`"},
		{"backslash", `us\ers`, "`us\\ers`"},
		{"unicode", "café", "`café`"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Backtick(tt.input)
			if got != tt.want {
				t.Errorf("Backtick(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
