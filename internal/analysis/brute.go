package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/caesar/internal/cipher"
	"github.com/verte-zerg/caesar/internal/model"
)

// KeySpace is the number of candidates in every brute-force result.
const KeySpace = cipher.MaxKey - cipher.MinKey + 1

// Ranked holds candidates ordered by descending score, ties by ascending key.
type Ranked []model.Candidate

// At returns the candidate at 1-based position n.
func (r Ranked) At(n int) (model.Candidate, bool) {
	if n < 1 || n > len(r) {
		return model.Candidate{}, false
	}
	return r[n-1], true
}

// Best returns the top-ranked candidate.
func (r Ranked) Best() (model.Candidate, bool) {
	return r.At(1)
}

// Export serializes all candidates in list order, one "Key {key}: {text}" line each.
func (r Ranked) Export() string {
	lines := make([]string, 0, len(r))
	for _, c := range r {
		lines = append(lines, fmt.Sprintf("Key %d: %s", c.Key, c.Text))
	}
	return strings.Join(lines, "\n")
}

// BruteForce decrypts ciphertext with every key in 1..25 and ranks the results.
func BruteForce(ciphertext string) Ranked {
	candidates := make([]model.Candidate, KeySpace)
	for i := range candidates {
		candidates[i] = candidateFor(ciphertext, cipher.MinKey+i)
	}
	return rank(candidates)
}

// BruteForceContext computes the candidates concurrently. If ctx is cancelled
// before every key is scored, the partial result is dropped and ctx.Err() is returned.
func BruteForceContext(ctx context.Context, ciphertext string) (Ranked, error) {
	candidates := make([]model.Candidate, KeySpace)
	g, gctx := errgroup.WithContext(ctx)
	for i := range candidates {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			candidates[i] = candidateFor(ciphertext, cipher.MinKey+i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rank(candidates), nil
}

func candidateFor(ciphertext string, key int) model.Candidate {
	text := cipher.Decrypt(ciphertext, key)
	return model.Candidate{Key: key, Text: text, Score: Score(text)}
}

// rank expects candidates in ascending key order; the stable sort keeps that
// order among equal scores.
func rank(candidates []model.Candidate) Ranked {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return Ranked(candidates)
}
