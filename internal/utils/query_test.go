package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		in   string
		def  int
		want int
	}{
		{"42", 0, 42},
		{" 7 ", 0, 7},
		{"", 10, 10},
		{"x", 5, 5},
		{"-3", 1, -3},
	}
	for _, tc := range cases {
		if got := AtoiDefault(tc.in, tc.def); got != tc.want {
			t.Fatalf("AtoiDefault(%q, %d) = %d; want %d", tc.in, tc.def, got, tc.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(0, 1, 10) != 1 || Clamp(11, 1, 10) != 10 || Clamp(5, 1, 10) != 5 {
		t.Fatalf("Clamp out of bounds")
	}
}

func TestParseOrder(t *testing.T) {
	for in, want := range map[string]bool{"": false, "asc": false, "ASC": false, "desc": true, " Desc ": true} {
		desc, ok := ParseOrder(in)
		if !ok || desc != want {
			t.Fatalf("ParseOrder(%q) = %v, %v", in, desc, ok)
		}
	}
	if _, ok := ParseOrder("sideways"); ok {
		t.Fatalf("expected rejection")
	}
}
