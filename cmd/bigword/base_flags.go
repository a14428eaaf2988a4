package main

import (
	"fmt"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"

	"bigword/internal/bignum"
)

// toBase validates a radix taken from a flag or the configuration.
func toBase(n int, flag string) (bignum.Word, error) {
	b, err := safecast.Conv[bignum.Word](n)
	if err != nil || b < bignum.MinBase || b > bignum.MaxBase {
		return 0, fmt.Errorf("--%s must be in %d..%d, got %d", flag, bignum.MinBase, bignum.MaxBase, n)
	}
	return b, nil
}

// parseNumeral folds full-width digits and signs before parsing.
func parseNumeral(s string, base bignum.Word) (bignum.BigInt, error) {
	return bignum.Parse(norm.NFKC.String(s), base)
}
