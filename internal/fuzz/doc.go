// Package fuzztests houses Go fuzz harnesses for the numeral parser, the
// checksum routines and the expression evaluator. They guard against panics
// on arbitrary input and check that whatever parses also round-trips.
package fuzztests
