package bignum

// Word is one base-2^16 digit of a magnitude.
//
// Every intermediate that can exceed a word (sums with carry, products with
// carry, borrows) is computed in a uint64 accumulator. The largest single
// step is (MaxWord)^2 + 2*MaxWord = Base^2 - 1, which fits with room to spare.
type Word uint16

const (
	// WordBits is the width of a Word.
	WordBits = 16
	// Base is the radix induced by Word.
	Base = 1 << WordBits
	// MaxWord is the largest value a Word can hold.
	MaxWord = Base - 1

	wordMask = uint64(MaxWord)

	// DecimalChunk is the largest power of ten that fits in one Word.
	DecimalChunk = 10000
	// DecimalChunkDigits is the number of decimal digits in DecimalChunk.
	DecimalChunkDigits = 4

	// MinBase and MaxBase bound the radix accepted by Parse and Text.
	MinBase = 2
	MaxBase = 36
)

// reduce drops most-significant zero words. The empty slice is the only
// representation of zero.
func reduce(m []Word) []Word {
	for len(m) > 0 && m[len(m)-1] == 0 {
		m = m[:len(m)-1]
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

// chunkFor returns the largest power of base that fits in one Word, and its
// exponent.
func chunkFor(base Word) (Word, int) {
	chunk, digits := uint64(base), 1
	for chunk*uint64(base) <= MaxWord {
		chunk *= uint64(base)
		digits++
	}
	return Word(chunk), digits
}
