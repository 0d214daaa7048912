package conv

import "testing"

func TestUtoa(t *testing.T) {
	var buf [20]byte
	cases := []struct {
		in   uint64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{163840, "163840"},
		{16777215, "16777215"},
		{18446744073709551615, "18446744073709551615"},
	}
	for _, c := range cases {
		if got := string(Utoa(buf[:], c.in)); got != c.want {
			t.Errorf("Utoa(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestItoaNegative(t *testing.T) {
	var buf [20]byte
	if got := string(Itoa(buf[:], -42)); got != "-42" {
		t.Errorf("Itoa(-42) = %q", got)
	}
	if got := string(Itoa(buf[:], 0)); got != "0" {
		t.Errorf("Itoa(0) = %q", got)
	}
}

func TestU32Hex(t *testing.T) {
	var buf [8]byte
	if got := string(U32Hex(buf[:], 0x00FFFFFF)); got != "00FFFFFF" {
		t.Errorf("U32Hex = %q", got)
	}
	if got := string(U32Hex(buf[:], 0)); got != "00000000" {
		t.Errorf("U32Hex(0) = %q", got)
	}
	var short [4]byte
	if got := U32Hex(short[:], 1); len(got) != 0 {
		t.Errorf("short buffer should yield empty slice, got %q", got)
	}
}

func TestASCIIHex(t *testing.T) {
	var buf [16]byte
	if got := string(ASCIIHex(buf[:], []byte("0A"))); got != "3041" {
		t.Errorf("ASCIIHex = %q", got)
	}
}
