package bignum

import (
	"errors"
	"math/big"
	"testing"
)

var testPrimes = []uint32{2, 3, 65521, 65537, 1000000007, 4294967291}

func TestChecksumMatchesModulus(t *testing.T) {
	r := newRand(t)
	for range 500 {
		x := randInt(r, 6)
		for _, p := range testPrimes {
			want := new(big.Int).Mod(toBig(x), big.NewInt(int64(p))).Uint64()
			if got := x.Checksum(p); uint64(got) != want {
				t.Fatalf("Checksum(%v, %d) = %d, want %d", x, p, got, want)
			}
		}
	}
}

func TestChecksumTextAgrees(t *testing.T) {
	r := newRand(t)
	for range 200 {
		x := randInt(r, 6)
		base := Word(MinBase + r.IntN(MaxBase-MinBase+1))
		for _, p := range testPrimes {
			got, err := ChecksumText(x.Text(base), p, base)
			if err != nil {
				t.Fatalf("ChecksumText: %v", err)
			}
			if want := x.Checksum(p); got != want {
				t.Fatalf("ChecksumText(%s, %d, %d) = %d, want %d", x.Text(base), p, base, got, want)
			}
		}
	}
}

func TestChecksumTextErrors(t *testing.T) {
	if _, err := ChecksumText("12A", 7, 10); !errors.Is(err, ErrParse) {
		t.Fatalf("ChecksumText(12A) error = %v, want ErrParse", err)
	}
	if _, err := ChecksumText("", 7, 10); !errors.Is(err, ErrParse) {
		t.Fatalf("ChecksumText(\"\") error = %v, want ErrParse", err)
	}
	if _, err := ChecksumText("12", 0, 10); !errors.Is(err, ErrInvariant) {
		t.Fatalf("ChecksumText(prime 0) error = %v, want ErrInvariant", err)
	}
	if got := FromInt64(12).Checksum(0); got != 0 {
		t.Fatalf("Checksum(prime 0) = %d, want 0", got)
	}
}

func TestHashCoherence(t *testing.T) {
	r := newRand(t)
	seen := make(map[uint64]string)
	collisions := 0
	for range 500 {
		x := randInt(r, 4)
		y := mustParse(t, x.Text(7), 7)
		if x.Hash() != y.Hash() {
			t.Fatalf("Hash(%v) differs after round trip", x)
		}
		if prev, ok := seen[x.Hash()]; ok && prev != x.String() {
			collisions++
		}
		seen[x.Hash()] = x.String()
	}
	if collisions > 5 {
		t.Fatalf("%d hash collisions over 500 values", collisions)
	}
	if FromInt64(5).Hash() == FromInt64(-5).Hash() {
		t.Fatalf("Hash(5) == Hash(-5)")
	}
	if FromWords([]Word{3, 0, 0}, false).Hash() != FromInt64(3).Hash() {
		t.Fatalf("redundant zero words changed the hash")
	}
}
