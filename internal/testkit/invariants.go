// Package testkit holds invariant checks over bignum results shared by the
// cross-check runner and the fuzz harnesses.
package testkit

import (
	"fmt"

	"bigword/internal/bignum"
)

// CheckReduced verifies the canonical form of x:
// 1) the most significant word is non-zero
// 2) zero has sign 0 and no words
// 3) Len agrees with the word slice
func CheckReduced(x bignum.BigInt) error {
	words := x.Words()
	if len(words) != x.Len() {
		return fmt.Errorf("Len() = %d but %d words", x.Len(), len(words))
	}
	if len(words) == 0 {
		if x.Sign() != 0 || !x.IsZero() {
			return fmt.Errorf("empty magnitude with sign %d", x.Sign())
		}
		return nil
	}
	if words[len(words)-1] == 0 {
		return fmt.Errorf("most significant word of %s is zero", x.Dump())
	}
	if x.Sign() == 0 {
		return fmt.Errorf("non-zero %s reports sign 0", x.Dump())
	}
	return nil
}

// CheckQuoRem verifies the truncated division law for a = q*b + r:
// 1) the identity holds
// 2) |r| < |b|
// 3) r is zero or has the sign of a
// 4) q and r are reduced
func CheckQuoRem(a, b, q, r bignum.BigInt) error {
	for _, v := range []bignum.BigInt{q, r} {
		if err := CheckReduced(v); err != nil {
			return err
		}
	}
	if got := bignum.Add(bignum.Mul(q, b), r); !got.Equal(a) {
		return fmt.Errorf("%s * %s + %s = %s, want %s", q, b, r, got, a)
	}
	if !r.Abs().Less(b.Abs()) {
		return fmt.Errorf("|%s mod %s| = %s is not below the divisor", a, b, r)
	}
	if !r.IsZero() && r.Sign() != a.Sign() {
		return fmt.Errorf("remainder %s of %s has the wrong sign", r, a)
	}
	return nil
}

// CheckRoundTrip verifies that rendering x in base and parsing it back
// yields x.
func CheckRoundTrip(x bignum.BigInt, base bignum.Word) error {
	text := x.Text(base)
	back, err := bignum.Parse(text, base)
	if err != nil {
		return fmt.Errorf("Parse(%q, %d): %w", text, base, err)
	}
	if !back.Equal(x) {
		return fmt.Errorf("Parse(Text(%s, %d)) = %s", x, base, back)
	}
	return CheckReduced(back)
}
