package bignum

import (
	"math"
	"math/bits"
)

type platformCheck struct {
	name string
	ok   func() bool
}

// platformChecks lists the environment properties every routine in this
// package relies on. Operands go through variables so the checks run at
// run time rather than being folded away.
var platformChecks = []platformCheck{
	{"word is 16 bits and unsigned", func() bool {
		var w Word
		w--
		return w == MaxWord && bits.Len16(uint16(w)) == WordBits
	}},
	{"uint32 wraps around", func() bool {
		u := uint32(math.MaxUint32)
		u++
		return u == 0
	}},
	{"uint64 is 64 bits", func() bool {
		u := uint64(math.MaxUint64)
		return bits.Len64(u) == 64
	}},
	{"right shift of uint64 does not sign-extend", func() bool {
		u := uint64(1) << 63
		return u>>63 == 1 && (^uint64(0))>>1 == math.MaxInt64
	}},
	{"accumulator holds a word product plus carries", func() bool {
		m := uint64(MaxWord)
		return m*m+2*m == Base*Base-1
	}},
	{"float64 is exact to 48 bits", func() bool {
		big := float64(uint64(1) << 48)
		one := 1.0
		return (big+one)-big == one
	}},
}

// SelfCheck validates the host assumptions the arithmetic depends on. It is
// meant to run once at startup; a non-nil error is a *PlatformError wrapping
// ErrPlatformAssumption and means no result of this package can be trusted.
func SelfCheck() error {
	return runChecks(platformChecks)
}

func runChecks(checks []platformCheck) error {
	for _, c := range checks {
		if !c.ok() {
			return &PlatformError{Check: c.name}
		}
	}
	return nil
}
