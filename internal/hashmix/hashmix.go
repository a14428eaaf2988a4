// Package hashmix provides an order-sensitive, non-cryptographic hash
// builder based on xorshift rounds.
package hashmix

// Builder accumulates values into a 64-bit digest. Every write first
// scrambles the running state with a 13/7/17 shift-xor round and then folds
// the new value in, so the digest depends on the order of writes.
//
// The zero value is ready to use.
type Builder struct {
	val uint64
}

// New returns a Builder seeded with seed.
func New(seed uint64) *Builder { return &Builder{val: seed} }

func (b *Builder) mix() {
	b.val ^= b.val << 13
	b.val ^= b.val >> 7
	b.val ^= b.val << 17
}

// WriteUint64 folds v into the digest.
func (b *Builder) WriteUint64(v uint64) *Builder {
	b.mix()
	b.val ^= v
	return b
}

// WriteInt folds a signed value into the digest.
func (b *Builder) WriteInt(v int) *Builder {
	return b.WriteUint64(uint64(v)) //nolint:gosec // G115: bit pattern is what gets hashed.
}

// WriteString folds every byte of s into the digest.
func (b *Builder) WriteString(s string) *Builder {
	for i := range len(s) {
		b.WriteUint64(uint64(s[i]))
	}
	return b
}

// Sum64 returns the current digest.
func (b *Builder) Sum64() uint64 { return b.val }

// Reset clears the digest.
func (b *Builder) Reset() { b.val = 0 }
