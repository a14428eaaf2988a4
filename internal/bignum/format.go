package bignum

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders x in decimal.
func (x BigInt) String() string { return x.Text(10) }

// Text renders x in the given base (2..36) using lowercase letters.
// It panics if base is out of range, as strconv.FormatInt does.
//
// The magnitude is divided repeatedly by the largest power of base that
// fits in one word; the remainders are chunks of fixed digit width, emitted
// most significant first with every chunk but the first zero-padded.
func (x BigInt) Text(base Word) string {
	if base < MinBase || base > MaxBase {
		panic(fmt.Sprintf("bignum: illegal base %d", base))
	}
	if x.IsZero() {
		return "0"
	}
	chunk, width := chunkFor(base)
	divisor := []Word{chunk}

	var chunks []Word
	cur := x.mag
	for len(cur) > 0 {
		q, r, err := divMag(cur, divisor)
		if err != nil {
			panic(err) // divisor is a non-zero constant
		}
		var c Word
		if len(r) > 0 {
			c = r[0]
		}
		chunks = append(chunks, c)
		cur = q
	}

	var sb strings.Builder
	sb.Grow(len(chunks)*width + 1)
	if x.neg {
		sb.WriteByte('-')
	}
	sb.WriteString(strconv.FormatUint(uint64(chunks[len(chunks)-1]), int(base)))
	for i := len(chunks) - 2; i >= 0; i-- {
		s := strconv.FormatUint(uint64(chunks[i]), int(base))
		for range width - len(s) {
			sb.WriteByte('0')
		}
		sb.WriteString(s)
	}
	return sb.String()
}

// Format implements fmt.Formatter. It supports %d, %s and %v (decimal),
// %b, %o, %x and %X. Width and the '-' flag are honored.
func (x BigInt) Format(f fmt.State, verb rune) {
	var s string
	switch verb {
	case 'd', 's', 'v':
		s = x.Text(10)
	case 'b':
		s = x.Text(2)
	case 'o':
		s = x.Text(8)
	case 'x':
		s = x.Text(16)
	case 'X':
		s = strings.ToUpper(x.Text(16))
	default:
		fmt.Fprintf(f, "%%!%c(bignum.BigInt=%s)", verb, x.Text(10))
		return
	}
	if f.Flag('+') && !x.neg {
		s = "+" + s
	}
	if w, ok := f.Width(); ok && len(s) < w {
		pad := strings.Repeat(" ", w-len(s))
		if f.Flag('-') {
			s += pad
		} else {
			s = pad + s
		}
	}
	_, _ = f.Write([]byte(s))
}

// Dump renders the magnitude as fixed-width hex words, most significant
// first, prefixed by the sign marker. Intended for debugging.
func (x BigInt) Dump() string {
	var sb strings.Builder
	if x.neg {
		sb.WriteByte('-')
	} else {
		sb.WriteByte('+')
	}
	sb.WriteByte('[')
	for i := len(x.mag) - 1; i >= 0; i-- {
		appendHexWord(&sb, x.mag[i])
		if i > 0 {
			sb.WriteByte(' ')
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// appendHexWord writes w as exactly four uppercase hex digits.
func appendHexWord(sb *strings.Builder, w Word) {
	const digits = "0123456789ABCDEF"
	for shift := WordBits - 4; shift >= 0; shift -= 4 {
		sb.WriteByte(digits[(w>>shift)&0xF])
	}
}
