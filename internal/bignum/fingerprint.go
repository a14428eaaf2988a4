package bignum

import "bigword/internal/hashmix"

// Checksum returns x modulo prime, in [0, prime), evaluated as a polynomial
// in Base over the words of x: acc = (acc*Base + word) mod prime, most
// significant word first. Negative values map to prime minus the residue of
// |x|. Checksum(0) is 0 for any prime; a zero prime yields 0.
//
// The result agrees with ChecksumText on any rendering of x, which makes it
// usable to cross-check the parser against the arithmetic.
func (x BigInt) Checksum(prime uint32) uint32 {
	if prime == 0 {
		return 0
	}
	p := uint64(prime)
	var acc uint64
	for i := len(x.mag) - 1; i >= 0; i-- {
		acc = (acc*Base + uint64(x.mag[i])) % p
	}
	return negResidue(acc, p, x.neg)
}

// ChecksumText computes the same residue as Checksum directly from a numeral
// in the given base, without building a BigInt. It accepts an optional sign.
func ChecksumText(s string, prime uint32, base Word) (uint32, error) {
	if prime == 0 {
		return 0, invariantf("ChecksumText", "prime must be non-zero")
	}
	if base < MinBase || base > MaxBase {
		return 0, &ParseError{Input: s, Offset: -1, Base: base, Reason: "base out of range"}
	}
	neg, digits, start, err := splitSign(s, base)
	if err != nil {
		return 0, err
	}
	p := uint64(prime)
	var acc uint64
	for i := range len(digits) {
		d, ok := digitValue(digits[i])
		if !ok || d >= base {
			return 0, &ParseError{Input: s, Offset: start + i, Base: base, Reason: "invalid digit " + quoteByte(digits[i])}
		}
		acc = (acc*uint64(base) + uint64(d)) % p
	}
	return negResidue(acc, p, neg), nil
}

func negResidue(acc, p uint64, neg bool) uint32 {
	if neg && acc != 0 {
		acc = p - acc
	}
	return uint32(acc) //nolint:gosec // G115: acc < p <= MaxUint32.
}

// Hash returns a non-cryptographic fingerprint of x. Equal values hash
// equal: the sign only contributes for non-zero values, and magnitudes are
// always reduced.
func (x BigInt) Hash() uint64 {
	var b hashmix.Builder
	if len(x.mag) == 0 {
		return b.Sum64()
	}
	if x.neg {
		b.WriteInt(-1)
	} else {
		b.WriteInt(1)
	}
	for _, w := range x.mag {
		b.WriteUint64(uint64(w))
	}
	return b.Sum64()
}
