package ledger

import "testing"

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   string
		lang string
		want string
	}{
		{"1234.5", "en", "1234.50"},
		{"1234.5", "de", "1234,50"},
		{"0", "en", "0.00"},
		{"600", "en", "600.00"},
		{"-12.345", "en", "-12.35"},
		{"1234.5", "not-a-lang", "1234.50"},
	}
	for _, c := range cases {
		got := FormatAmount(dec(t, c.in), c.lang)
		if got != c.want {
			t.Errorf("FormatAmount(%s, %s) = %q, want %q", c.in, c.lang, got, c.want)
		}
	}
}
