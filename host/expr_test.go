package host

import (
	"fmt"
	"testing"
)

type mapResolver map[string]int64

func (m mapResolver) resolveIdentifier(s string) (int64, error) {
	if v, ok := m[s]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("identifier '%s' not found", s)
}

func TestExprParse(t *testing.T) {
	cases := []struct {
		expr string
		want int64
	}{
		{"0", 0},
		{"42", 42},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10-4-3", 3},
		{"7/2", 3},
		{"10%3", 1},
		{"$ff", 255},
		{"0x10", 16},
		{"0X10", 16},
		{"0b1010", 10},
		{"1<<4", 16},
		{"256>>4", 16},
		{"0x10|0x01", 17},
		{"0xFF&0x0F", 15},
		{"0xFF^0x0F", 240},
		{"~0", -1},
		{"-5+3", -2},
		{"+5", 5},
		{"'A'", 65},
		{"'A'+1", 66},
		{"1|2&3", 3},
		{"  1 + 2  ", 3},
	}

	p := newExprParser()
	for _, tc := range cases {
		got, err := p.Parse(tc.expr, nil)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tc.expr, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: exp %d, got %d", tc.expr, tc.want, got)
		}
	}
}

func TestExprParseErrors(t *testing.T) {
	cases := []string{
		"",
		"1/0",
		"1%0",
		"2+",
		"(1",
		"5 5",
		"'A",
		"$",
		"nosuchthing",
	}

	p := newExprParser()
	for _, expr := range cases {
		if _, err := p.Parse(expr, nil); err == nil {
			t.Errorf("%q: expected an error", expr)
		}
	}
}

func TestExprHexMode(t *testing.T) {
	p := newExprParser()
	p.hexMode = true

	cases := []struct {
		expr string
		want int64
	}{
		{"10", 16},
		{"ff", 255},
		{"10+10", 32},
		{"0b11", 3},
	}
	for _, tc := range cases {
		got, err := p.Parse(tc.expr, nil)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tc.expr, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: exp %d, got %d", tc.expr, tc.want, got)
		}
	}
}

func TestExprIdentifiers(t *testing.T) {
	r := mapResolver{"pc": 0x1000, "d0": 42, "sp": 0x8000}
	p := newExprParser()

	cases := []struct {
		expr string
		want int64
	}{
		{"pc", 0x1000},
		{"pc+2", 0x1002},
		{"d0*2", 84},
		{"sp-4", 0x7FFC},
	}
	for _, tc := range cases {
		got, err := p.Parse(tc.expr, r)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tc.expr, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: exp %d, got %d", tc.expr, tc.want, got)
		}
	}

	if _, err := p.Parse("a9", r); err == nil {
		t.Error("unknown identifier: expected an error")
	}
}
