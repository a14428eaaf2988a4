// Package bignum implements arbitrary-precision signed integers over
// base-2^16 words.
//
// A BigInt is a reduced magnitude (least significant word first, no leading
// zero word) plus a sign marker. Addition and subtraction propagate
// carries and borrows word by word, multiplication is schoolbook, and
// division is long division that estimates each quotient word from the
// leading words of the running remainder and corrects the estimate by trial
// subtraction.
//
// Values are immutable; the *Assign methods replace the receiver with a
// freshly computed result. A single BigInt must not be updated from two
// goroutines at once.
//
// Call SelfCheck once at startup before trusting any result.
package bignum
