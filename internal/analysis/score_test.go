package analysis

import "testing"

func TestScoreReferenceValues(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		// " the " x2, " and " x1, letters t4 h3 a3 e2 n1 d1.
		{"the cat and the hat", 44},
		{"", 0},
		{"1234 !?", 0},
		{"THE END", 16},
		// Repeated words sharing a boundary space both count.
		{"the the", 26},
		{"hello world", 9},
	}
	for _, tc := range cases {
		if got := Score(tc.text); got != tc.want {
			t.Fatalf("Score(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestScoreIgnoresWordsWithoutBoundaries(t *testing.T) {
	// "this" contains "is" but not " is ".
	if got, want := Score("this"), 4; got != want {
		t.Fatalf("Score(this) = %d, want %d", got, want)
	}
}

func TestScoreDeterministic(t *testing.T) {
	text := "Several words, some of them in the list; others not."
	first := Score(text)
	for i := 0; i < 5; i++ {
		if got := Score(text); got != first {
			t.Fatalf("score changed between calls: %d vs %d", first, got)
		}
	}
}

func TestCountOverlapping(t *testing.T) {
	if got := countOverlapping("aaaa", "aa"); got != 3 {
		t.Fatalf("expected 3 overlapping matches, got %d", got)
	}
	if got := countOverlapping("abc", "x"); got != 0 {
		t.Fatalf("expected 0 matches, got %d", got)
	}
}
