// Package sample builds English practice sentences and Caesar challenges.
package sample

import (
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/caesar/internal/cipher"
)

var pool = []string{
	"the", "and", "to", "of", "that", "is", "in", "it", "for", "you",
	"with", "on", "have", "be", "as", "at", "message", "secret", "river",
	"north", "garden", "letter", "morning", "soldier", "camp", "bridge",
	"signal", "travel", "before", "after", "night", "east", "wall", "gate",
	"horse", "winter", "road", "hold", "wait", "send", "word", "friend",
}

// Generator produces randomized sample text.
type Generator struct {
	rnd   *rand.Rand
	words []string
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a deterministic Generator.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed)), words: pool}
}

// UseWords replaces the built-in pool. An empty list keeps the current pool.
func (g *Generator) UseWords(words []string) {
	if len(words) > 0 {
		g.words = words
	}
}

// Sentence joins count random words, capitalizes the first and ends with a period.
func (g *Generator) Sentence(count int) string {
	if count <= 0 {
		return ""
	}
	words := make([]string, 0, count)
	for i := 0; i < count; i++ {
		words = append(words, g.words[g.rnd.Intn(len(g.words))])
	}
	words[0] = capitalize(words[0])
	return strings.Join(words, " ") + "."
}

// Key returns a random key in the brute-force key space.
func (g *Generator) Key() int {
	return cipher.MinKey + g.rnd.Intn(cipher.MaxKey-cipher.MinKey+1)
}

// Challenge returns a sentence, its encryption and the key used.
func (g *Generator) Challenge(count int) (plaintext, ciphertext string, key int) {
	plaintext = g.Sentence(count)
	key = g.Key()
	return plaintext, cipher.Encrypt(plaintext, key), key
}

func capitalize(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
