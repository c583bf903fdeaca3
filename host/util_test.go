package host

import "testing"

func TestCodeString(t *testing.T) {
	cases := []struct {
		in   []byte
		want string
	}{
		{nil, ""},
		{[]byte{0x4E}, ""},
		{[]byte{0x4E, 0x71}, "4E71"},
		{[]byte{0x4E, 0xB8, 0x20, 0x00}, "4EB8 2000"},
	}
	for _, tc := range cases {
		if got := codeString(tc.in); got != tc.want {
			t.Errorf("codeString(% X): exp %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestAddrToBuf(t *testing.T) {
	b := make([]byte, 8)
	addrToBuf(0x0012ABCD, b)
	if string(b) != "0012ABCD" {
		t.Errorf("addrToBuf: exp 0012ABCD, got %s", b)
	}
}

func TestStringToBool(t *testing.T) {
	for _, s := range []string{"1", "true", "TRUE"} {
		v, err := stringToBool(s)
		if err != nil || !v {
			t.Errorf("stringToBool(%q): exp true, got %t (%v)", s, v, err)
		}
	}
	for _, s := range []string{"0", "false"} {
		v, err := stringToBool(s)
		if err != nil || v {
			t.Errorf("stringToBool(%q): exp false, got %t (%v)", s, v, err)
		}
	}
	if _, err := stringToBool("maybe"); err == nil {
		t.Error("stringToBool(maybe): expected an error")
	}
}

func TestToPrintableChar(t *testing.T) {
	if got := toPrintableChar('a'); got != 'a' {
		t.Errorf("exp 'a', got %q", got)
	}
	if got := toPrintableChar(0); got != '.' {
		t.Errorf("exp '.', got %q", got)
	}
	if got := toPrintableChar(127); got != '.' {
		t.Errorf("exp '.', got %q", got)
	}
}
