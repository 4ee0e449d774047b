package p3

import "strings"

// CompareNatural orders strings so that runs of digits compare by numeric
// value: "A2" sorts before "A10". Non-digit runs compare bytewise. It
// returns -1, 0 or +1.
func CompareNatural(a, b string) int {
	for a != "" && b != "" {
		ca, restA := nextChunk(a)
		cb, restB := nextChunk(b)

		var c int
		if isDigit(ca[0]) && isDigit(cb[0]) {
			c = compareDigits(ca, cb)
		} else {
			c = strings.Compare(ca, cb)
		}
		if c != 0 {
			return c
		}
		a, b = restA, restB
	}
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	default:
		return 1
	}
}

func nextChunk(s string) (chunk, rest string) {
	digit := isDigit(s[0])
	n := 1
	for n < len(s) && isDigit(s[n]) == digit {
		n++
	}
	return s[:n], s[n:]
}

// compareDigits compares two digit runs by value, then by length so that
// "01" and "1" still order deterministically.
func compareDigits(a, b string) int {
	ta := strings.TrimLeft(a, "0")
	tb := strings.TrimLeft(b, "0")
	if len(ta) != len(tb) {
		if len(ta) < len(tb) {
			return -1
		}
		return 1
	}
	if c := strings.Compare(ta, tb); c != 0 {
		return c
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
