package bignum

import (
	"math/big"
	"math/rand/v2"
	"testing"
)

func toBig(x BigInt) *big.Int {
	z := new(big.Int)
	for i := len(x.mag) - 1; i >= 0; i-- {
		z.Lsh(z, WordBits)
		z.Or(z, big.NewInt(int64(x.mag[i])))
	}
	if x.neg {
		z.Neg(z)
	}
	return z
}

func mustParse(t *testing.T, s string, base Word) BigInt {
	t.Helper()
	x, err := Parse(s, base)
	if err != nil {
		t.Fatalf("Parse(%q, %d): %v", s, base, err)
	}
	return x
}

// randInt returns a random value with up to maxWords words. Word values are
// skewed toward 0 and MaxWord to reach carry and borrow edges.
func randInt(r *rand.Rand, maxWords int) BigInt {
	n := r.IntN(maxWords + 1)
	words := make([]Word, n)
	for i := range words {
		switch r.IntN(6) {
		case 0:
			words[i] = 0
		case 1:
			words[i] = MaxWord
		default:
			words[i] = Word(r.UintN(Base))
		}
	}
	return FromWords(words, r.IntN(2) == 0)
}

func newRand(t *testing.T) *rand.Rand {
	t.Helper()
	return rand.New(rand.NewPCG(0x5eed, uint64(len(t.Name()))))
}

func assertReduced(t *testing.T, what string, x BigInt) {
	t.Helper()
	if len(x.mag) > 0 && x.mag[len(x.mag)-1] == 0 {
		t.Fatalf("%s is not reduced: %s", what, x.Dump())
	}
	if len(x.mag) == 0 && x.neg {
		t.Fatalf("%s is a negative zero", what)
	}
}

func assertMatches(t *testing.T, what string, got BigInt, want *big.Int) {
	t.Helper()
	assertReduced(t, what, got)
	if toBig(got).Cmp(want) != 0 {
		t.Fatalf("%s = %s, want %s", what, got, want)
	}
}
