// Package document validates Brazilian tax identifiers: CPF for individual
// customers (11 digits) and CNPJ for companies (14 digits). Both end in two
// check digits computed from weighted sums over the leading digits modulo 11.
package document

import (
	"strings"
)

const (
	cpfLength  = 11
	cnpjLength = 14
)

var formatting = strings.NewReplacer(".", "", "-", "", "/", "")

// CNPJ check-digit weights. The second sequence covers the first twelve
// digits plus the first check digit.
var (
	cnpjFirstWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjSecondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Normalize strips the usual CPF/CNPJ formatting punctuation.
func Normalize(doc string) string {
	return formatting.Replace(doc)
}

// Valid reports whether digits is a checksum-correct CPF (11 digits) or
// CNPJ (14 digits). Any other length, any non-digit character and any
// sequence of identical digits is rejected.
func Valid(digits string) bool {
	switch len(digits) {
	case cpfLength:
		return validCPF(digits)
	case cnpjLength:
		return validCNPJ(digits)
	default:
		return false
	}
}

func validCPF(digits string) bool {
	d, ok := toDigits(digits)
	if !ok || allSame(d) {
		return false
	}
	// First check digit: weights 10..2 over the leading nine digits.
	if checkDigit(d[:9], descendingWeights(10)) != d[9] {
		return false
	}
	// Second check digit: weights 11..2 over the leading ten digits.
	return checkDigit(d[:10], descendingWeights(11)) == d[10]
}

func validCNPJ(digits string) bool {
	d, ok := toDigits(digits)
	if !ok || allSame(d) {
		return false
	}
	if checkDigit(d[:12], cnpjFirstWeights) != d[12] {
		return false
	}
	return checkDigit(d[:13], cnpjSecondWeights) == d[13]
}

// checkDigit computes a mod-11 check digit: 0 when the weighted sum's
// remainder is below 2, 11 minus the remainder otherwise.
func checkDigit(digits, weights []int) int {
	sum := 0
	for i, d := range digits {
		sum += d * weights[i]
	}
	if rem := sum % 11; rem >= 2 {
		return 11 - rem
	}
	return 0
}

func descendingWeights(from int) []int {
	w := make([]int, 0, from-1)
	for i := from; i >= 2; i-- {
		w = append(w, i)
	}
	return w
}

func toDigits(s string) ([]int, bool) {
	d := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return nil, false
		}
		d[i] = int(c - '0')
	}
	return d, true
}

func allSame(d []int) bool {
	for _, v := range d[1:] {
		if v != d[0] {
			return false
		}
	}
	return true
}
