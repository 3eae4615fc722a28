package cipher

import (
	"math"
	"testing"
	"unicode/utf8"

	"pgregory.net/rapid"
)

func TestShiftKnownValues(t *testing.T) {
	cases := []struct {
		text string
		key  int
		want string
	}{
		{"ABC", 1, "BCD"},
		{"XYZ", 1, "YZA"},
		{"Hello, World!", 3, "Khoor, Zruog!"},
		{"abc", -1, "zab"},
		{"abc", 27, "bcd"},
		{"abc", -27, "zab"},
		{"", 5, ""},
		{"123 !?", 7, "123 !?"},
		{"Ünïcode ß", 1, "Üoïdpef ß"},
	}
	for _, tc := range cases {
		if got := Shift(tc.text, tc.key); got != tc.want {
			t.Fatalf("Shift(%q, %d) = %q, want %q", tc.text, tc.key, got, tc.want)
		}
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	ciphertext := Encrypt("attack at dawn", 5)
	if ciphertext != "fyyfhp fy ifbs" {
		t.Fatalf("unexpected ciphertext: %q", ciphertext)
	}
	if got := Decrypt(ciphertext, 5); got != "attack at dawn" {
		t.Fatalf("expected round trip, got %q", got)
	}
}

func TestShiftExtremeKeys(t *testing.T) {
	text := "The Quick Brown Fox"
	for _, key := range []int{math.MaxInt, math.MinInt, math.MinInt + 1} {
		if got := Decrypt(Encrypt(text, key), key); got != text {
			t.Fatalf("inverse failed for key %d: %q", key, got)
		}
		if Normalize(key) < 0 || Normalize(key) >= AlphabetSize {
			t.Fatalf("Normalize(%d) out of range: %d", key, Normalize(key))
		}
	}
}

func TestEncryptDecryptMinIntKey(t *testing.T) {
	ciphertext := Encrypt("attack at dawn", math.MinInt)
	if ciphertext != "sllsuc sl vsof" {
		t.Fatalf("unexpected ciphertext: %q", ciphertext)
	}
	if got := Decrypt(ciphertext, math.MinInt); got != "attack at dawn" {
		t.Fatalf("expected round trip at MinInt, got %q", got)
	}
}

func TestDecryptInverseProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "text")
		k := rapid.Int().Draw(t, "key")
		if got := Decrypt(Encrypt(s, k), k); got != s {
			t.Fatalf("Decrypt(Encrypt(%q, %d)) = %q", s, k, got)
		}
	})
}

func TestShiftInvalidUTF8PassesThrough(t *testing.T) {
	text := "ab\xff\xfecd"
	want := "bc\xff\xfede"
	if got := Shift(text, 1); got != want {
		t.Fatalf("Shift(%q, 1) = %q, want %q", text, got, want)
	}
}

func TestNormalize(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 25: 25, 26: 0, 27: 1, -1: 25, -26: 0, -27: 25}
	for key, want := range cases {
		if got := Normalize(key); got != want {
			t.Fatalf("Normalize(%d) = %d, want %d", key, got, want)
		}
	}
}

func TestShiftInverseProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "text")
		k := rapid.IntRange(-10000, 10000).Draw(t, "key")
		if got := Shift(Shift(s, k), -k); got != s {
			t.Fatalf("Shift(Shift(%q, %d), %d) = %q", s, k, -k, got)
		}
	})
}

func TestShiftPreservesShapeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "text")
		k := rapid.Int().Draw(t, "key")
		out := Shift(s, k)
		if len(out) != len(s) {
			t.Fatalf("length changed: %d -> %d", len(s), len(out))
		}
		if utf8.RuneCountInString(out) != utf8.RuneCountInString(s) {
			t.Fatalf("rune count changed")
		}
		in := []rune(s)
		got := []rune(out)
		for i := range in {
			if isUpper(in[i]) != isUpper(got[i]) || isLower(in[i]) != isLower(got[i]) {
				t.Fatalf("class changed at %d: %q -> %q", i, in[i], got[i])
			}
			if !isUpper(in[i]) && !isLower(in[i]) && in[i] != got[i] {
				t.Fatalf("non-letter changed at %d: %q -> %q", i, in[i], got[i])
			}
		}
	})
}

func TestShiftIdentityProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "text")
		n := rapid.IntRange(-100, 100).Draw(t, "multiple")
		if Shift(s, 0) != s || Shift(s, 26) != s || Shift(s, n*AlphabetSize) != s {
			t.Fatalf("shift by a multiple of 26 changed %q", s)
		}
	})
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
