// Package analysis scores candidate plaintexts and ranks brute-force results.
package analysis

import "strings"

// WordWeight is the score added per common-word occurrence.
const WordWeight = 10

// FrequentLetters holds the high-frequency English letters, worth one point each.
const FrequentLetters = "etaoinshrdlu"

// CommonWords lists short English words padded with boundary spaces.
var CommonWords = []string{
	" the ", " and ", " to ", " of ", " that ", " is ", " in ", " it ",
	" for ", " you ", " with ", " on ", " have ", " be ", " as ", " at ",
}

// Score estimates how English-like text is. The text is lower-cased and padded
// with one space on each side so words at the edges match like interior ones.
func Score(text string) int {
	padded := " " + strings.ToLower(text) + " "
	score := 0
	for _, word := range CommonWords {
		score += countOverlapping(padded, word) * WordWeight
	}
	for i := 0; i < len(FrequentLetters); i++ {
		score += strings.Count(padded, FrequentLetters[i:i+1])
	}
	return score
}

// countOverlapping counts every offset where sub starts in s.
func countOverlapping(s, sub string) int {
	count := 0
	for {
		idx := strings.Index(s, sub)
		if idx < 0 {
			return count
		}
		count++
		s = s[idx+1:]
	}
}
