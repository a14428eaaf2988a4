package bignum

import "math"

// BigInt is an arbitrary-precision signed integer.
//
// The magnitude is stored least significant word first and is always
// reduced. The sign marker is a bool, so it is always either +1 or -1; zero
// is the empty magnitude and compares and hashes equal under either marker.
// The zero value is a ready-to-use zero.
//
// BigInt behaves as an immutable value: no operation writes into an existing
// magnitude, so copies never observe each other's updates.
type BigInt struct {
	mag []Word
	neg bool
}

// makeInt reduces mag and builds a BigInt, forcing the + marker on zero.
func makeInt(mag []Word, neg bool) BigInt {
	mag = reduce(mag)
	if len(mag) == 0 {
		return BigInt{}
	}
	return BigInt{mag: mag, neg: neg}
}

// FromWords builds a BigInt from a least-significant-first word slice.
// The slice is copied.
func FromWords(words []Word, neg bool) BigInt {
	return makeInt(append([]Word(nil), reduce(words)...), neg)
}

// FromUint64 creates a BigInt from a uint64.
func FromUint64(v uint64) BigInt {
	var buf [4]Word
	n := 0
	for v != 0 {
		buf[n] = Word(v & wordMask)
		v >>= WordBits
		n++
	}
	return makeInt(append([]Word(nil), buf[:n]...), false)
}

// FromUint32 creates a BigInt from a uint32.
func FromUint32(v uint32) BigInt { return FromUint64(uint64(v)) }

// FromUint16 creates a BigInt from a uint16.
func FromUint16(v uint16) BigInt { return FromUint64(uint64(v)) }

// FromInt64 creates a BigInt from an int64, including math.MinInt64.
func FromInt64(v int64) BigInt {
	if v >= 0 {
		return FromUint64(uint64(v))
	}
	u := -uint64(v) //nolint:gosec // G115: two's-complement negation yields |v| for every negative v.
	x := FromUint64(u)
	x.neg = true
	return x
}

// FromInt32 creates a BigInt from an int32.
func FromInt32(v int32) BigInt { return FromInt64(int64(v)) }

// FromInt16 creates a BigInt from an int16.
func FromInt16(v int16) BigInt { return FromInt64(int64(v)) }

// IsZero reports whether x is zero.
func (x BigInt) IsZero() bool { return len(x.mag) == 0 }

// Sign returns -1, 0 or +1.
func (x BigInt) Sign() int {
	switch {
	case len(x.mag) == 0:
		return 0
	case x.neg:
		return -1
	default:
		return 1
	}
}

// Len returns the number of words in the magnitude.
func (x BigInt) Len() int { return len(x.mag) }

// Words returns a copy of the magnitude, least significant word first.
func (x BigInt) Words() []Word { return append([]Word(nil), x.mag...) }

// Neg returns -x.
func (x BigInt) Neg() BigInt { return makeInt(x.mag, !x.neg) }

// Abs returns |x|.
func (x BigInt) Abs() BigInt { return makeInt(x.mag, false) }

// Cmp compares a and b and returns -1, 0 or +1.
func Cmp(a, b BigInt) int {
	az, bz := a.IsZero(), b.IsZero()
	switch {
	case az && bz:
		return 0
	case a.neg != b.neg || az || bz:
		// Differing signs, or exactly one zero: the sign alone decides.
		return cmpSigns(a, b)
	}
	c := cmpMag(a.mag, b.mag)
	if a.neg {
		return -c
	}
	return c
}

func cmpSigns(a, b BigInt) int {
	as, bs := a.Sign(), b.Sign()
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x BigInt) Cmp(y BigInt) int { return Cmp(x, y) }

// Equal reports x == y.
func (x BigInt) Equal(y BigInt) bool { return Cmp(x, y) == 0 }

// NotEqual reports x != y.
func (x BigInt) NotEqual(y BigInt) bool { return Cmp(x, y) != 0 }

// Less reports x < y.
func (x BigInt) Less(y BigInt) bool { return Cmp(x, y) < 0 }

// LessEq reports x <= y.
func (x BigInt) LessEq(y BigInt) bool { return Cmp(x, y) <= 0 }

// Greater reports x > y.
func (x BigInt) Greater(y BigInt) bool { return Cmp(x, y) > 0 }

// GreaterEq reports x >= y.
func (x BigInt) GreaterEq(y BigInt) bool { return Cmp(x, y) >= 0 }

// addOrSub computes a + b, or a - b when sub is set. The result always lives
// in a freshly allocated magnitude, so the in-place forms may pass the
// receiver as either operand.
func addOrSub(a, b BigInt, sub bool) BigInt {
	bneg := b.neg != sub
	if a.neg == bneg {
		out := make([]Word, max(len(a.mag), len(b.mag))+1)
		addRange(out, a.mag, b.mag)
		return makeInt(out, a.neg)
	}
	switch cmpMag(a.mag, b.mag) {
	case 0:
		return BigInt{}
	case 1:
		out := make([]Word, len(a.mag))
		subRange(out, a.mag, b.mag)
		return makeInt(out, a.neg)
	default:
		out := make([]Word, len(b.mag))
		subRange(out, b.mag, a.mag)
		return makeInt(out, bneg)
	}
}

// Add returns a + b.
func Add(a, b BigInt) BigInt { return addOrSub(a, b, false) }

// Sub returns a - b.
func Sub(a, b BigInt) BigInt { return addOrSub(a, b, true) }

// Mul returns a * b.
func Mul(a, b BigInt) BigInt {
	if a.IsZero() || b.IsZero() {
		return BigInt{}
	}
	out := make([]Word, len(a.mag)+len(b.mag))
	mulMag(out, a.mag, b.mag)
	return makeInt(out, a.neg != b.neg)
}

// QuoRem returns the truncated quotient a / b and the remainder a % b.
// The quotient's sign is the product of the operand signs; the remainder
// takes the sign of a.
func QuoRem(a, b BigInt) (q, r BigInt, err error) {
	qm, rm, err := divMag(a.mag, b.mag)
	if err != nil {
		return BigInt{}, BigInt{}, err
	}
	return makeInt(qm, a.neg != b.neg), makeInt(rm, a.neg), nil
}

// Quo returns the truncated quotient a / b.
func Quo(a, b BigInt) (BigInt, error) {
	q, _, err := QuoRem(a, b)
	return q, err
}

// Rem returns a % b with the sign of a.
func Rem(a, b BigInt) (BigInt, error) {
	_, r, err := QuoRem(a, b)
	return r, err
}

// AddAssign sets z to z + b.
func (z *BigInt) AddAssign(b BigInt) { *z = addOrSub(*z, b, false) }

// SubAssign sets z to z - b.
func (z *BigInt) SubAssign(b BigInt) { *z = addOrSub(*z, b, true) }

// MulAssign sets z to z * b.
func (z *BigInt) MulAssign(b BigInt) { *z = Mul(*z, b) }

// QuoAssign sets z to z / b. On error z is left unchanged.
func (z *BigInt) QuoAssign(b BigInt) error {
	q, err := Quo(*z, b)
	if err != nil {
		return err
	}
	*z = q
	return nil
}

// RemAssign sets z to z % b. On error z is left unchanged.
func (z *BigInt) RemAssign(b BigInt) error {
	r, err := Rem(*z, b)
	if err != nil {
		return err
	}
	*z = r
	return nil
}

// Negate sets z to -z.
func (z *BigInt) Negate() { *z = z.Neg() }

// Uint32 returns x modulo 2^32. Negative values wrap as in two's complement,
// so FromInt64(-1).Uint32() == math.MaxUint32.
func (x BigInt) Uint32() uint32 {
	var v uint32
	for i := min(len(x.mag), 2) - 1; i >= 0; i-- {
		v = v<<WordBits | uint32(x.mag[i])
	}
	if x.neg {
		v = -v
	}
	return v
}

// Int32 returns the low 32 bits of x's two's-complement form as an int32.
func (x BigInt) Int32() int32 {
	return int32(x.Uint32()) //nolint:gosec // G115: truncation is the documented behavior.
}

// Uint64 converts x to a uint64 if it is non-negative and fits.
func (x BigInt) Uint64() (uint64, bool) {
	if x.neg && !x.IsZero() || len(x.mag) > 4 {
		return 0, false
	}
	return x.low64(), true
}

// Int64 converts x to an int64 if it fits.
func (x BigInt) Int64() (int64, bool) {
	if len(x.mag) > 4 {
		return 0, false
	}
	mag := x.low64()
	if !x.neg {
		if mag > math.MaxInt64 {
			return 0, false
		}
		return int64(mag), true
	}
	if mag > uint64(math.MaxInt64)+1 {
		return 0, false
	}
	return -int64(mag), true //nolint:gosec // G115: mag == 2^63 wraps to MinInt64 as intended.
}

func (x BigInt) low64() uint64 {
	var v uint64
	for i := min(len(x.mag), 4) - 1; i >= 0; i-- {
		v = v<<WordBits | uint64(x.mag[i])
	}
	return v
}

// Float64 returns a float64 approximation of x, accumulated word by word from
// the most significant end. Values beyond the float64 range become ±Inf.
func (x BigInt) Float64() float64 {
	var f float64
	for i := len(x.mag) - 1; i >= 0; i-- {
		f = f*Base + float64(x.mag[i])
	}
	if x.neg {
		return -f
	}
	return f
}
