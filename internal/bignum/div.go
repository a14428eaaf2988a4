package bignum

// estimate divides (x1,x2,x3) by (y1,y2), most significant word first.
// y1 must be non-zero. The quotient of the three leading window words by the
// two leading divisor words never undershoots the true quotient word, and may
// overshoot it; the result is clamped to Base, one past MaxWord.
//
// Both operands are exact in float64 (48 and 32 bits against a 53-bit
// mantissa), and correct rounding keeps the truncated quotient at or above
// the exact floor.
func estimate(x1, x2, x3, y1, y2 Word) uint32 {
	num := float64(x1)*(Base*Base) + float64(x2)*Base + float64(x3)
	den := float64(y1)*Base + float64(y2)
	q := num / den
	if q >= Base {
		return Base
	}
	return uint32(q)
}

// maxCorrections bounds how far a trial quotient word may sit above the
// word that fits.
const maxCorrections = 2

// divMag divides the reduced magnitude u by the reduced magnitude d and
// returns the reduced quotient and remainder. u is not modified.
//
// A window of len(d)+1 words slides from the most significant end of a
// working copy of u. For each position a trial quotient word is estimated
// from the window's top three words and the divisor's top two, then
// corrected by trial subtraction until it fits.
func divMag(u, d []Word) (q, r []Word, err error) {
	return divMagSteps(u, d, nil)
}

// divMagSteps is divMag reporting each trial estimate and the quotient word
// it was corrected to through step, when step is non-nil.
func divMagSteps(u, d []Word, step func(trial uint32, got Word)) (q, r []Word, err error) {
	n := len(d)
	if n == 0 {
		return nil, nil, ErrDivByZero
	}
	if d[n-1] == 0 {
		panic(invariantf("divMag", "divisor is not reduced"))
	}
	if cmpMag(u, d) < 0 {
		return nil, append([]Word(nil), u...), nil
	}

	m := len(u)
	rest := make([]Word, m+1)
	copy(rest, u)
	scratch := make([]Word, n+1)

	var y2 Word
	y1 := d[n-1]
	if n > 1 {
		y2 = d[n-2]
	}

	// Quotient words come out most significant first.
	quot := make([]Word, 0, m-n+1)
	for j := m - n; j >= 0; j-- {
		window := rest[j : j+n+1]
		var w3 Word
		if n > 1 {
			w3 = window[n-2]
		}
		trial := estimate(window[n], window[n-1], w3, y1, y2)
		factor := subMulWord(window, d, trial, scratch)
		if trial-uint32(factor) > maxCorrections {
			panic(invariantf("divMag", "estimate %d corrected to %d at position %d", trial, factor, j))
		}
		if step != nil {
			step(trial, factor)
		}
		if window[n] != 0 {
			panic(invariantf("divMag", "remainder window exceeds divisor at position %d", j))
		}
		quot = append(quot, factor)
	}

	for i, k := 0, len(quot)-1; i < k; i, k = i+1, k-1 {
		quot[i], quot[k] = quot[k], quot[i]
	}
	return reduce(quot), reduce(rest[:n]), nil
}
