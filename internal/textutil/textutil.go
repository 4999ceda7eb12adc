// Package textutil generates and checks the strings tests type into forms.
package textutil

import (
	"math/rand"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// RandomString returns n random ASCII letters and digits. It is not
// suitable for secrets.
func RandomString(n int) string {
	if n <= 0 {
		return ""
	}

	b := make([]byte, n)
	for i := range b {
		b[i] = alphanumeric[rand.Intn(len(alphanumeric))]
	}
	return string(b)
}

// RandomEmail returns an address of the form xxxxxxxx@yyyyy.com in lower
// case.
func RandomEmail() string {
	return strings.ToLower(RandomString(8)) + "@" + strings.ToLower(RandomString(5)) + ".com"
}

// IsValidEmail reports whether s looks like local@domain.tld.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// SplitWords splits s on runs of whitespace. Blank input gives an empty,
// non-nil slice.
func SplitWords(s string) []string {
	words := strings.Fields(s)
	if words == nil {
		return []string{}
	}
	return words
}

// IsNumeric reports whether s, ignoring surrounding whitespace, is a signed
// decimal number with an optional exponent. Inf, NaN, hex floats, digit
// underscores and type suffixes such as "1d" are not numeric. Values too
// large for a float64 still are.
func IsNumeric(s string) bool {
	return decimalPattern.MatchString(strings.TrimSpace(s))
}

// CapitalizeWords upper-cases the first letter and lower-cases the rest of
// every word, and joins the words with single spaces.
func CapitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		first, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
