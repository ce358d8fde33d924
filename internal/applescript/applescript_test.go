package applescript

import "testing"

func TestEscape(t *testing.T) {
	cases := map[string]string{
		``:                 ``,
		`plain`:            `plain`,
		`say "hi"`:         `say \"hi\"`,
		`back\slash`:       `back\\slash`,
		`both \ and "q"`:   `both \\ and \"q\"`,
		`\"already\"`:      `\\\"already\\\"`,
		`+1 (415) 555-000`: `+1 (415) 555-000`,
	}
	for in, want := range cases {
		if got := Escape(in); got != want {
			t.Fatalf("Escape(%q)=%q want %q", in, got, want)
		}
	}
}
