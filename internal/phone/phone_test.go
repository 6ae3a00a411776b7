package phone

import "testing"

func TestNormalizeRussianNumbers(t *testing.T) {
	n := NewNormalizer("RU")

	cases := []struct {
		raw  string
		want string
	}{
		{"+7 999 123-45-67", "+79991234567"},
		{"89161112233", "+79161112233"},
		{"8 (495) 123-45-67", "+74951234567"},
		{"+79991234567", "+79991234567"},
	}
	for _, tc := range cases {
		got, err := n.Normalize(tc.raw)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	n := NewNormalizer("")

	for _, raw := range []string{"", "not-a-phone", "123", "+7999"} {
		if _, err := n.Normalize(raw); err == nil {
			t.Fatalf("Normalize(%q) accepted an invalid number", raw)
		}
	}
}

func TestNormalizeAllFailsFast(t *testing.T) {
	n := NewNormalizer("RU")

	out, err := n.NormalizeAll([]string{"+79991234567", "bogus", "+79161112233"})
	if err == nil {
		t.Fatal("expected batch with a bad number to fail")
	}
	if out != nil {
		t.Fatalf("out = %v, want nil on failure", out)
	}
}
