// Package conv formats numbers into caller-supplied buffers.
// No allocations; no fmt/strconv dependency, so it stays cheap on MCU builds.
package conv

// Utoa writes the base-10 representation of n into buf and returns the
// used slice. buf should be length >= 10 for uint32.
func Utoa(buf []byte, n uint32) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	i := len(buf)
	if n == 0 {
		i--
		buf[i] = '0'
		return buf[i:]
	}
	for n > 0 && i > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return buf[i:]
}

// U8Hex writes two uppercase hex digits without a 0x prefix, zero-padded.
func U8Hex(buf []byte, n uint8) []byte {
	if len(buf) < 2 {
		return buf[:0]
	}
	const hexd = "0123456789ABCDEF"
	i := len(buf) - 2
	buf[i] = hexd[n>>4]
	buf[i+1] = hexd[n&0xF]
	return buf[i : i+2]
}

// AppendUint appends the base-10 representation of n to dst.
func AppendUint(dst []byte, n uint32) []byte {
	var tmp [10]byte
	return append(dst, Utoa(tmp[:], n)...)
}

// AppendU8Hex appends "0x" and two uppercase hex digits to dst.
func AppendU8Hex(dst []byte, n uint8) []byte {
	var tmp [2]byte
	dst = append(dst, '0', 'x')
	return append(dst, U8Hex(tmp[:], n)...)
}
