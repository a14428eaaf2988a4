package bignum

import (
	"math/bits"
	"strings"
)

// Parse converts a numeral in the given base (2..36) into a BigInt.
//
// An optional leading '+' or '-' selects the sign. Digits are 0-9 followed
// by the letters a-z, case-insensitive. A numeral made only of zeros is zero
// whatever its sign. Malformed input yields a *ParseError wrapping ErrParse.
func Parse(s string, base Word) (BigInt, error) {
	if base < MinBase || base > MaxBase {
		return BigInt{}, &ParseError{Input: s, Offset: -1, Base: base, Reason: "base out of range"}
	}
	neg, digits, start, err := splitSign(s, base)
	if err != nil {
		return BigInt{}, err
	}

	// Each digit adds at most bits.Len(base) bits; two spare words cover
	// the carry slot used by the multiply-add pass.
	// The buffers alternate as source and destination; n is the reduced
	// length of the running value, which is zero while only leading zeros
	// have been read.
	size := (len(digits)*bits.Len16(uint16(base)))/WordBits + 2
	bufs := [2][]Word{make([]Word, size), make([]Word, size)}
	n := 0
	for i := range len(digits) {
		d, ok := digitValue(digits[i])
		if !ok || d >= base {
			return BigInt{}, &ParseError{Input: s, Offset: start + i, Base: base, Reason: "invalid digit " + quoteByte(digits[i])}
		}
		src, dst := bufs[i%2], bufs[(i+1)%2]
		n = len(mulAddWord(dst[:n+1], src[:n], base, d))
	}
	return makeInt(bufs[len(digits)%2][:n], neg), nil
}

// ParseDecimal is Parse in base 10.
func ParseDecimal(s string) (BigInt, error) { return Parse(s, 10) }

// MustParse is ParseDecimal that panics on error. Intended for constants
// and tests.
func MustParse(s string) BigInt {
	x, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return x
}

// mulAddWord stores x*m + c into dst, which must hold len(x)+1 words and
// must not overlap x, and returns dst reduced.
func mulAddWord(dst, x []Word, m, c Word) []Word {
	clear(dst)
	dst[0] = c
	addMulWord(dst, x, m)
	return reduce(dst)
}

// splitSign strips an optional sign and checks that digits remain.
func splitSign(s string, base Word) (neg bool, digits string, start int, err error) {
	digits = s
	if digits != "" && (digits[0] == '+' || digits[0] == '-') {
		neg = digits[0] == '-'
		digits = digits[1:]
		start = 1
	}
	if digits == "" {
		reason := "empty numeral"
		if start == 1 {
			reason = "sign without digits"
		}
		return false, "", 0, &ParseError{Input: s, Offset: -1, Base: base, Reason: reason}
	}
	return neg, digits, start, nil
}

// digitValue maps '0'-'9', 'a'-'z' and 'A'-'Z' to 0..35.
func digitValue(ch byte) (Word, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return Word(ch - '0'), true
	case ch >= 'a' && ch <= 'z':
		return Word(ch-'a') + 10, true
	case ch >= 'A' && ch <= 'Z':
		return Word(ch-'A') + 10, true
	default:
		return 0, false
	}
}

func quoteByte(ch byte) string {
	var b strings.Builder
	b.WriteByte('\'')
	if ch >= 0x20 && ch < 0x7f {
		b.WriteByte(ch)
	} else {
		const hex = "0123456789abcdef"
		b.WriteString(`\x`)
		b.WriteByte(hex[ch>>4])
		b.WriteByte(hex[ch&0xf])
	}
	b.WriteByte('\'')
	return b.String()
}
