package bignum

// cmpWords compares two equal-length word ranges, scanning from the most
// significant end and stopping at the first difference.
func cmpWords(a, b []Word) int {
	if len(a) != len(b) {
		panic(invariantf("cmpWords", "length mismatch %d != %d", len(a), len(b)))
	}
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// cmpMag compares two reduced magnitudes. A longer reduced magnitude is
// always larger, so only equal lengths fall through to the word scan.
func cmpMag(a, b []Word) int {
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return cmpWords(a, b)
}
