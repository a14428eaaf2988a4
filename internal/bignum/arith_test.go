package bignum

import (
	"errors"
	"math/big"
	"testing"
)

func expectInvariant(t *testing.T, op string, fn func()) {
	t.Helper()
	defer func() {
		rec := recover()
		err, ok := rec.(error)
		if !ok || !errors.Is(err, ErrInvariant) {
			t.Fatalf("%s: recovered %v, want an ErrInvariant panic", op, rec)
		}
	}()
	fn()
}

func TestCmpWords(t *testing.T) {
	cases := []struct {
		a, b []Word
		want int
	}{
		{nil, nil, 0},
		{[]Word{1, 2}, []Word{1, 2}, 0},
		{[]Word{9, 1}, []Word{0, 2}, -1},
		{[]Word{0, 2}, []Word{9, 1}, 1},
		{[]Word{1, 0}, []Word{0, 0}, 1},
	}
	for _, tc := range cases {
		if got := cmpWords(tc.a, tc.b); got != tc.want {
			t.Fatalf("cmpWords(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
	expectInvariant(t, "cmpWords", func() { cmpWords([]Word{1}, []Word{1, 2}) })
}

func TestCmpMagLengthFirst(t *testing.T) {
	if got := cmpMag([]Word{0, 1}, []Word{MaxWord}); got != 1 {
		t.Fatalf("cmpMag(B, B-1) = %d, want 1", got)
	}
	if got := cmpMag(nil, []Word{1}); got != -1 {
		t.Fatalf("cmpMag(0, 1) = %d, want -1", got)
	}
}

func TestAddRangeCarry(t *testing.T) {
	dst := []Word{7, 7, 7, 7}
	addRange(dst, []Word{MaxWord, MaxWord, MaxWord}, []Word{1})
	want := []Word{0, 0, 0, 1}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("addRange = %v, want %v", dst, want)
		}
	}
}

func TestAddRangeWritesWholeDestination(t *testing.T) {
	dst := []Word{9, 9, 9, 9, 9}
	addRange(dst, []Word{1}, []Word{2})
	want := []Word{3, 0, 0, 0, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("addRange = %v, want %v", dst, want)
		}
	}
}

func TestAddRangeUndersized(t *testing.T) {
	expectInvariant(t, "addRange", func() {
		addRange(make([]Word, 2), []Word{1, 1}, []Word{1})
	})
}

func TestSubRangeBorrow(t *testing.T) {
	dst := []Word{5, 5, 5}
	subRange(dst, []Word{0, 0, 1}, []Word{1})
	want := []Word{MaxWord, MaxWord, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("subRange = %v, want %v", dst, want)
		}
	}
}

func TestSubRangePreconditions(t *testing.T) {
	expectInvariant(t, "negative", func() {
		subRange(make([]Word, 2), []Word{1}, []Word{2})
	})
	expectInvariant(t, "undersized", func() {
		subRange(make([]Word, 1), []Word{0, 2}, []Word{1})
	})
	// A short destination is fine when the dropped words are zero.
	dst := make([]Word, 1)
	subRange(dst, []Word{5, 1}, []Word{0, 1})
	if dst[0] != 5 {
		t.Fatalf("subRange = %v, want [5]", dst)
	}
}

func TestAddMulWordRipplesCarry(t *testing.T) {
	dst := []Word{MaxWord, MaxWord, MaxWord, 0}
	addMulWord(dst, []Word{1}, 1)
	want := []Word{0, 0, 0, 1}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("addMulWord = %v, want %v", dst, want)
		}
	}
	expectInvariant(t, "addMulWord", func() {
		addMulWord([]Word{MaxWord}, []Word{MaxWord}, MaxWord)
	})
}

func TestSubMulWordCorrectsEstimate(t *testing.T) {
	// window = 2B + 5 and q = B + 1: a trial factor of 3 overshoots, 2 fits.
	window := []Word{5, 2, 0}
	f := subMulWord(window, []Word{1, 1}, 3, make([]Word, 3))
	if f != 2 {
		t.Fatalf("subMulWord factor = %d, want 2", f)
	}
	if window[0] != 3 || window[1] != 0 || window[2] != 0 {
		t.Fatalf("subMulWord window = %v, want [3 0 0]", window)
	}
}

func TestSubMulWordAcceptsBase(t *testing.T) {
	// Divisor B^2 + 1 truncates to B, so the window B^3 estimates to Base
	// while the true quotient word is MaxWord.
	d := []Word{1, 0, 1}
	window := []Word{0, 0, 0, 1}
	trial := estimate(window[3], window[2], window[1], d[2], d[1])
	if trial != Base {
		t.Fatalf("estimate = %d, want %d", trial, Base)
	}
	f := subMulWord(window, d, trial, make([]Word, 4))
	if f != MaxWord {
		t.Fatalf("subMulWord factor = %d, want %d", f, MaxWord)
	}
	want := []Word{1, MaxWord, 0, 0}
	for i := range want {
		if window[i] != want[i] {
			t.Fatalf("subMulWord window = %v, want %v", window, want)
		}
	}
}

func TestMulMagPreconditions(t *testing.T) {
	expectInvariant(t, "undersized", func() {
		mulMag(make([]Word, 2), []Word{1, 1}, []Word{1})
	})
	expectInvariant(t, "dirty", func() {
		mulMag([]Word{0, 1, 0}, []Word{1, 1}, []Word{1})
	})
}

func TestMulMagFullWidth(t *testing.T) {
	a := []Word{MaxWord, MaxWord}
	dst := make([]Word, 4)
	mulMag(dst, a, a)
	// (B^2-1)^2 = B^4 - 2B^2 + 1
	want := []Word{1, 0, MaxWord - 1, MaxWord}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("mulMag = %v, want %v", dst, want)
		}
	}
}

func TestDivMagCorrectionBound(t *testing.T) {
	r := newRand(t)
	corrected := 0
	for i := range 2000 {
		u := randInt(r, 12).Abs()
		d := randInt(r, 6).Abs()
		if d.IsZero() {
			continue
		}
		// Small leading divisor words make the truncated estimate loosest.
		if i%2 == 0 {
			words := d.Words()
			words[len(words)-1] = Word(1 + r.IntN(3))
			d = FromWords(words, false)
		}
		q, rem, err := divMagSteps(u.mag, d.mag, func(trial uint32, got Word) {
			if uint32(got) > trial {
				t.Fatalf("%s / %s: word %d above estimate %d", u, d, got, trial)
			}
			if trial-uint32(got) > maxCorrections {
				t.Fatalf("%s / %s: estimate %d corrected to %d", u, d, trial, got)
			}
			if trial != uint32(got) {
				corrected++
			}
		})
		if err != nil {
			t.Fatalf("divMag(%s, %s): %v", u, d, err)
		}
		wantQ, wantR := new(big.Int).QuoRem(toBig(u), toBig(d), new(big.Int))
		assertMatches(t, "quotient of "+u.String()+" / "+d.String(), FromWords(q, false), wantQ)
		assertMatches(t, "remainder of "+u.String()+" / "+d.String(), FromWords(rem, false), wantR)
	}
	t.Logf("%d quotient words needed a correction", corrected)
}

func TestDivMagReportsBaseEstimate(t *testing.T) {
	var steps [][2]uint32
	_, _, err := divMagSteps([]Word{0, 0, 0, 1}, []Word{1, 0, 1}, func(trial uint32, got Word) {
		steps = append(steps, [2]uint32{trial, uint32(got)})
	})
	if err != nil {
		t.Fatalf("divMag: %v", err)
	}
	// B^3 / (B^2 + 1): the upper window B^2 estimates 1 and fits 0, the lower
	// one estimates Base and fits MaxWord.
	want := [][2]uint32{{1, 0}, {Base, MaxWord}}
	if len(steps) != len(want) || steps[0] != want[0] || steps[1] != want[1] {
		t.Fatalf("divMag steps = %v, want %v", steps, want)
	}
}
