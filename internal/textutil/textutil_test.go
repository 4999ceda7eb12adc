package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestRandomString(t *testing.T) {
	assert.Len(t, RandomString(5), 5)
	assert.Empty(t, RandomString(0))
	assert.Empty(t, RandomString(-3))

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 200).Draw(rt, "n")
		s := RandomString(n)
		if len(s) != n {
			rt.Fatalf("len = %d, want %d", len(s), n)
		}
		if strings.Trim(s, alphanumeric) != "" {
			rt.Fatalf("%q has characters outside [A-Za-z0-9]", s)
		}
	})
}

func TestRandomEmail(t *testing.T) {
	for i := 0; i < 50; i++ {
		email := RandomEmail()
		assert.Contains(t, email, "@")
		assert.True(t, strings.HasSuffix(email, ".com"), email)
		assert.Equal(t, strings.ToLower(email), email)
		assert.Len(t, email, 8+1+5+4)
		assert.True(t, IsValidEmail(email), email)
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name@domain.co.uk", "test123@test-domain.org", "a+tag@x.io"}
	invalid := []string{"", "invalid-email", "@domain.com", "user@", "user@domain", "user@domain.c", "us er@domain.com"}

	for _, s := range valid {
		assert.True(t, IsValidEmail(s), s)
	}
	for _, s := range invalid {
		assert.False(t, IsValidEmail(s), s)
	}
}

func TestSplitWords(t *testing.T) {
	assert.Equal(t, []string{"Hello", "world", "test"}, SplitWords("Hello world test"))
	assert.Equal(t, []string{"Hello"}, SplitWords("Hello"))
	assert.Equal(t, []string{"a", "b"}, SplitWords("  a \t\n b  "))

	for _, blank := range []string{"", "   ", "\t\n"} {
		words := SplitWords(blank)
		assert.NotNil(t, words)
		assert.Empty(t, words)
	}
}

func TestSplitWords_RoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		words := rapid.SliceOf(rapid.StringMatching(`[a-z]{1,8}`)).Draw(rt, "words")
		sep := rapid.SampledFrom([]string{" ", "  ", "\t", "\n "}).Draw(rt, "sep")

		got := SplitWords(sep + strings.Join(words, sep) + sep)
		if len(got) != len(words) {
			rt.Fatalf("SplitWords gave %v, want %v", got, words)
		}
		for i := range words {
			if got[i] != words[i] {
				rt.Fatalf("word %d = %q, want %q", i, got[i], words[i])
			}
		}
	})
}

func TestIsNumeric(t *testing.T) {
	numeric := []string{"123", "123.45", "-123", "0", "0.0", "123 ", " 123", "1e3", "+1.5E-2", ".5", "5.", "1e400"}
	notNumeric := []string{
		"", " ", "abc", "12a3", "12 3",
		"inf", "+Inf", "-Infinity", "NaN", "nan",
		"0x1p3", "1_000", "1d", "1f", ".", "1e", "e3",
	}

	for _, s := range numeric {
		assert.True(t, IsNumeric(s), "%q", s)
	}
	for _, s := range notNumeric {
		assert.False(t, IsNumeric(s), "%q", s)
	}
}

func TestCapitalizeWords(t *testing.T) {
	tests := map[string]string{
		"hello world":     "Hello World",
		"TEST CASE":       "Test Case",
		"mIxEd CaSe TeXt": "Mixed Case Text",
		"":                "",
		"a":               "A",
		"a b c":           "A B C",
		"  spaced   out ": "Spaced Out",
		"élan vital":      "Élan Vital",
	}

	for in, want := range tests {
		assert.Equal(t, want, CapitalizeWords(in), "%q", in)
	}
}

func TestCapitalizeWords_Idempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.StringMatching(`[a-zA-Z ]{0,40}`).Draw(rt, "s")
		once := CapitalizeWords(s)
		if twice := CapitalizeWords(once); twice != once {
			rt.Fatalf("CapitalizeWords(%q) = %q, again = %q", s, once, twice)
		}
		if len(SplitWords(once)) != len(SplitWords(s)) {
			rt.Fatalf("word count changed: %q -> %q", s, once)
		}
	})
}
