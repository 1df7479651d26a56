package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+14155552671", "+14155552671"},
		{"415 555 2671", "+14155552671"},
		{"(415) 555-2671", "+14155552671"},
		{"  +14155552671  ", "+14155552671"},
		{"", ""},
		{"not a phone", "not a phone"},
	}
	for _, c := range cases {
		if got := NormalizeE164(c.in); got != c.want {
			t.Errorf("NormalizeE164(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
