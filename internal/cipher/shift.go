// Package cipher implements the Caesar shift transform.
package cipher

// AlphabetSize is the number of letters in the Latin alphabet.
const AlphabetSize = 26

// Brute-force key space bounds (inclusive).
const (
	MinKey = 1
	MaxKey = AlphabetSize - 1
)

// Normalize reduces key to its residue in [0, AlphabetSize).
func Normalize(key int) int {
	k := key % AlphabetSize
	if k < 0 {
		k += AlphabetSize
	}
	return k
}

// Shift rotates every ASCII letter in text by key positions, preserving case.
// All other bytes are copied unchanged. Multi-byte UTF-8 sequences never contain
// ASCII bytes, so non-Latin letters pass through intact.
func Shift(text string, key int) string {
	k := byte(Normalize(key))
	if k == 0 {
		return text
	}
	out := make([]byte, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= 'A' && c <= 'Z':
			c = 'A' + (c-'A'+k)%AlphabetSize
		case c >= 'a' && c <= 'z':
			c = 'a' + (c-'a'+k)%AlphabetSize
		}
		out[i] = c
	}
	return string(out)
}

// Encrypt shifts plaintext forward by key.
func Encrypt(plaintext string, key int) string {
	return Shift(plaintext, key)
}

// Decrypt shifts ciphertext backward by key. The residue is negated rather
// than the key so math.MinInt round-trips.
func Decrypt(ciphertext string, key int) string {
	return Shift(ciphertext, AlphabetSize-Normalize(key))
}
