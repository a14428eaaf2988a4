package bignum

// mulMag stores a * b into dst using schoolbook multiplication.
//
// dst must be zero-filled, hold at least len(a)+len(b) words, and must not
// share storage with a or b. The result is not reduced.
func mulMag(dst, a, b []Word) {
	if len(dst) < len(a)+len(b) {
		panic(invariantf("mulMag", "destination has %d words, need %d", len(dst), len(a)+len(b)))
	}
	for i, w := range dst {
		if w != 0 {
			panic(invariantf("mulMag", "destination word %d is not zero", i))
		}
	}
	if len(a) < len(b) {
		a, b = b, a
	}
	for i, factor := range b {
		if factor == 0 {
			continue
		}
		addMulWord(dst[i:], a, factor)
	}
}
