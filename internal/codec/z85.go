package codec

import "fmt"

// z85Alphabet is the fixed 85-character printable alphabet (ZeroMQ RFC 32
// order) used to render a 4-byte buffer as 5 printable characters.
const z85Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ.-:+=^!/*?&<>()[]{}@%$#"

var z85Decode [256]int8

func init() {
	for i := range z85Decode {
		z85Decode[i] = -1
	}
	for i := 0; i < len(z85Alphabet); i++ {
		z85Decode[z85Alphabet[i]] = int8(i)
	}
}

// encodeZ85 renders a big-endian uint32 as 5 Z85 characters, most
// significant digit first.
func encodeZ85(value uint32) string {
	var out [5]byte
	for i := 4; i >= 0; i-- {
		out[i] = z85Alphabet[value%85]
		value /= 85
	}
	return string(out[:])
}

// decodeZ85 parses exactly 5 Z85 characters back into a uint32. It returns
// an error if s is not 5 bytes long, contains a character outside the Z85
// alphabet, or would overflow a uint32.
func decodeZ85(s string) (uint32, error) {
	if len(s) != 5 {
		return 0, fmt.Errorf("%w: code must be exactly 5 characters, got %d", ErrInvalidCode, len(s))
	}
	var value uint64
	for i := 0; i < 5; i++ {
		d := z85Decode[s[i]]
		if d < 0 {
			return 0, fmt.Errorf("%w: byte %q is not in the Z85 alphabet", ErrInvalidCode, s[i])
		}
		value = value*85 + uint64(d)
	}
	if value > 0xFFFFFFFF {
		return 0, fmt.Errorf("%w: decoded value %d overflows 32 bits", ErrInvalidCode, value)
	}
	return uint32(value), nil
}
