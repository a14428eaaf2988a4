package crosscheck

import (
	"fmt"
	"math/big"
	"math/rand/v2"

	"bigword/internal/bignum"
	"bigword/internal/testkit"
)

type property struct {
	name  string
	check func(*env) error
}

// env is the per-property random state.
type env struct {
	rng      *rand.Rand
	maxWords int
	primes   []uint32
}

// value returns a random integer of up to maxWords words. Words are skewed
// toward 0 and MaxWord so carries and borrows chain.
func (e *env) value() bignum.BigInt {
	n := e.rng.IntN(e.maxWords + 1)
	words := make([]bignum.Word, n)
	for i := range words {
		switch e.rng.IntN(5) {
		case 0:
			words[i] = 0
		case 1:
			words[i] = bignum.MaxWord
		default:
			words[i] = bignum.Word(e.rng.Uint32())
		}
	}
	return bignum.FromWords(words, e.rng.IntN(2) == 0)
}

func (e *env) nonZero() bignum.BigInt {
	for {
		if v := e.value(); !v.IsZero() {
			return v
		}
	}
}

func (e *env) base() bignum.Word {
	return bignum.Word(bignum.MinBase + e.rng.IntN(int(bignum.MaxBase-bignum.MinBase)+1))
}

// oracle converts x to math/big through its words, independent of the
// numeral code.
func oracle(x bignum.BigInt) *big.Int {
	z := new(big.Int)
	words := x.Words()
	for i := len(words) - 1; i >= 0; i-- {
		z.Lsh(z, bignum.WordBits)
		z.Or(z, big.NewInt(int64(words[i])))
	}
	if x.Sign() < 0 {
		z.Neg(z)
	}
	return z
}

func agree(op string, got bignum.BigInt, want *big.Int, args ...bignum.BigInt) error {
	if oracle(got).Cmp(want) == 0 {
		return nil
	}
	return fmt.Errorf("%s%v = %s, want %s", op, args, got, want)
}

func equal(op string, a, b bignum.BigInt) error {
	if a.Equal(b) {
		return nil
	}
	return fmt.Errorf("%s: %s != %s", op, a, b)
}

var properties = []property{
	{"compare", func(e *env) error {
		a, b := e.value(), e.value()
		if got, want := a.Cmp(b), oracle(a).Cmp(oracle(b)); got != want {
			return fmt.Errorf("Cmp(%s, %s) = %d, want %d", a, b, got, want)
		}
		return nil
	}},
	{"add", func(e *env) error {
		a, b := e.value(), e.value()
		if err := testkit.CheckReduced(bignum.Add(a, b)); err != nil {
			return err
		}
		return agree("Add", bignum.Add(a, b), new(big.Int).Add(oracle(a), oracle(b)), a, b)
	}},
	{"sub", func(e *env) error {
		a, b := e.value(), e.value()
		return agree("Sub", bignum.Sub(a, b), new(big.Int).Sub(oracle(a), oracle(b)), a, b)
	}},
	{"mul", func(e *env) error {
		a, b := e.value(), e.value()
		return agree("Mul", bignum.Mul(a, b), new(big.Int).Mul(oracle(a), oracle(b)), a, b)
	}},
	{"quorem", func(e *env) error {
		a, b := e.value(), e.nonZero()
		q, r, err := bignum.QuoRem(a, b)
		if err != nil {
			return fmt.Errorf("QuoRem(%s, %s): %w", a, b, err)
		}
		wq, wr := new(big.Int).QuoRem(oracle(a), oracle(b), new(big.Int))
		if err := agree("Quo", q, wq, a, b); err != nil {
			return err
		}
		return agree("Rem", r, wr, a, b)
	}},
	{"division-law", func(e *env) error {
		a, b := e.value(), e.nonZero()
		q, r, err := bignum.QuoRem(a, b)
		if err != nil {
			return err
		}
		return testkit.CheckQuoRem(a, b, q, r)
	}},
	{"commutative", func(e *env) error {
		a, b := e.value(), e.value()
		if err := equal("a+b vs b+a", bignum.Add(a, b), bignum.Add(b, a)); err != nil {
			return err
		}
		return equal("a*b vs b*a", bignum.Mul(a, b), bignum.Mul(b, a))
	}},
	{"associative", func(e *env) error {
		a, b, c := e.value(), e.value(), e.value()
		if err := equal("(a+b)+c vs a+(b+c)", bignum.Add(bignum.Add(a, b), c), bignum.Add(a, bignum.Add(b, c))); err != nil {
			return err
		}
		return equal("(a*b)*c vs a*(b*c)", bignum.Mul(bignum.Mul(a, b), c), bignum.Mul(a, bignum.Mul(b, c)))
	}},
	{"distributive", func(e *env) error {
		a, b, c := e.value(), e.value(), e.value()
		return equal("a*(b+c) vs a*b+a*c", bignum.Mul(a, bignum.Add(b, c)), bignum.Add(bignum.Mul(a, b), bignum.Mul(a, c)))
	}},
	{"sub-is-add-neg", func(e *env) error {
		a, b := e.value(), e.value()
		return equal("a-b vs a+(-b)", bignum.Sub(a, b), bignum.Add(a, b.Neg()))
	}},
	{"text-round-trip", func(e *env) error {
		x, base := e.value(), e.base()
		if text, want := x.Text(base), oracle(x).Text(int(base)); text != want {
			return fmt.Errorf("Text(%d) = %q, want %q", base, text, want)
		}
		return testkit.CheckRoundTrip(x, base)
	}},
	{"hash-coherent", func(e *env) error {
		x := e.value()
		y, err := bignum.ParseDecimal(x.String())
		if err != nil {
			return err
		}
		if z := bignum.Sub(bignum.Add(x, x), x); x.Hash() != y.Hash() || x.Hash() != z.Hash() {
			return fmt.Errorf("equal values %s hash differently", x)
		}
		return nil
	}},
	{"checksum", func(e *env) error {
		x, base := e.value(), e.base()
		for _, p := range e.primes {
			got := x.Checksum(p)
			want := new(big.Int).Mod(oracle(x), new(big.Int).SetUint64(uint64(p)))
			if uint64(got) != want.Uint64() {
				return fmt.Errorf("Checksum(%s, %d) = %d, want %s", x, p, got, want)
			}
			text, err := bignum.ChecksumText(x.Text(base), p, base)
			if err != nil {
				return err
			}
			if text != got {
				return fmt.Errorf("ChecksumText(%s in base %d, %d) = %d, want %d", x, base, p, text, got)
			}
		}
		return nil
	}},
	{"extract", func(e *env) error {
		x := e.value()
		o := oracle(x)
		if v, ok := x.Int64(); ok != o.IsInt64() || (ok && v != o.Int64()) {
			return fmt.Errorf("Int64(%s) = %d, %v", x, v, ok)
		}
		if v, ok := x.Uint64(); ok != o.IsUint64() || (ok && v != o.Uint64()) {
			return fmt.Errorf("Uint64(%s) = %d, %v", x, v, ok)
		}
		low := new(big.Int).And(o, big.NewInt(0xFFFFFFFF))
		if got := x.Uint32(); uint64(got) != low.Uint64() {
			return fmt.Errorf("Uint32(%s) = %d, want %s", x, got, low)
		}
		return nil
	}},
}
