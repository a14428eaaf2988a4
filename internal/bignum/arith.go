package bignum

// The primitives in this file work on caller-sized word ranges. Sizing is a
// precondition: an undersized destination, or a subtraction whose result
// would be negative, is a caller bug and panics with an *InvariantError
// instead of truncating.

// addRange stores p + q into dst and writes every word of dst.
// len(dst) must exceed max(len(p), len(q)) so a final carry always fits.
func addRange(dst, p, q []Word) {
	if len(p) < len(q) {
		p, q = q, p
	}
	if len(dst) <= len(p) {
		panic(invariantf("addRange", "destination has %d words, need %d", len(dst), len(p)+1))
	}
	var carry uint64
	for i := range dst {
		sum := carry
		if i < len(p) {
			sum += uint64(p[i])
		}
		if i < len(q) {
			sum += uint64(q[i])
		}
		dst[i] = Word(sum & wordMask)
		carry = sum >> WordBits
	}
}

// subRange stores p - q into dst and writes every word of dst.
// The value of p must be at least the value of q, and dst must be long
// enough for every significant word of the difference.
func subRange(dst, p, q []Word) {
	n := max(len(dst), len(p), len(q))
	var borrow uint64
	for i := range n {
		var a, b uint64
		if i < len(p) {
			a = uint64(p[i])
		}
		if i < len(q) {
			b = uint64(q[i])
		}
		b += borrow
		var d uint64
		if a >= b {
			d, borrow = a-b, 0
		} else {
			d, borrow = a+Base-b, 1
		}
		if i < len(dst) {
			dst[i] = Word(d)
		} else if d != 0 {
			panic(invariantf("subRange", "destination has %d words, difference needs more", len(dst)))
		}
	}
	if borrow != 0 {
		panic(invariantf("subRange", "difference is negative"))
	}
}

// addMulWord adds q * factor into dst, aligned at dst[0], and ripples the
// carry past len(q) as far as needed. dst must be long enough to absorb it.
func addMulWord(dst, q []Word, factor Word) {
	if len(dst) < len(q) {
		panic(invariantf("addMulWord", "destination has %d words, operand has %d", len(dst), len(q)))
	}
	f := uint64(factor)
	var carry uint64
	for i, w := range q {
		t := uint64(dst[i]) + uint64(w)*f + carry
		dst[i] = Word(t & wordMask)
		carry = t >> WordBits
	}
	for i := len(q); carry != 0; i++ {
		if i >= len(dst) {
			panic(invariantf("addMulWord", "carry out of a %d-word destination", len(dst)))
		}
		t := uint64(dst[i]) + carry
		dst[i] = Word(t & wordMask)
		carry = t >> WordBits
	}
}

// subMulWord tries to subtract q * factor from window, where
// len(window) == len(q)+1 and the top word of window is the headroom word.
// factor may be one past MaxWord. While the product does not fit, factor is
// decremented. The difference for the first fitting factor is written back
// into window and that factor is returned. scratch must hold len(window)
// words.
func subMulWord(window, q []Word, factor uint32, scratch []Word) Word {
	if len(window) != len(q)+1 || len(scratch) < len(window) {
		panic(invariantf("subMulWord", "window %d, operand %d, scratch %d", len(window), len(q), len(scratch)))
	}
	scratch = scratch[:len(window)]
	for {
		if trySubMul(scratch, window, q, uint64(factor)) {
			copy(window, scratch)
			return Word(factor)
		}
		if factor == 0 {
			panic(invariantf("subMulWord", "zero factor does not fit"))
		}
		factor--
	}
}

// trySubMul computes window - q*f into out and reports whether the result is
// non-negative.
func trySubMul(out, window, q []Word, f uint64) bool {
	var borrow uint64
	for i, w := range q {
		prod := uint64(w)*f + borrow
		lo, hi := prod&wordMask, prod>>WordBits
		a := uint64(window[i])
		if a >= lo {
			out[i] = Word(a - lo)
			borrow = hi
		} else {
			out[i] = Word(a + Base - lo)
			borrow = hi + 1
		}
	}
	top := uint64(window[len(q)])
	if top < borrow {
		return false
	}
	out[len(q)] = Word(top - borrow)
	return true
}
