package conv

const hexd = "0123456789ABCDEF"

// U32Hex writes 8-digit uppercase hex without 0x, zero-padded.
func U32Hex(buf []byte, n uint32) []byte {
	if len(buf) < 8 {
		return buf[:0]
	}
	i := len(buf)
	for j := 0; j < 8; j++ {
		i--
		buf[i] = hexd[n&0xF]
		n >>= 4
	}
	return buf[i:]
}

// ASCIIHex writes the two-digit uppercase hex value of each input byte,
// so "0" becomes "30". buf must be at least 2*len(in).
func ASCIIHex(buf []byte, in []byte) []byte {
	if len(buf) < 2*len(in) {
		return buf[:0]
	}
	for i, b := range in {
		buf[2*i] = hexd[b>>4]
		buf[2*i+1] = hexd[b&0xF]
	}
	return buf[:2*len(in)]
}
