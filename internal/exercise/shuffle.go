package exercise

import (
	"math/rand/v2"
	"sync"
)

// Shuffler fills each tier's word bank with a uniform random permutation of
// its answers. The zero value uses the global generator. A Shuffler is safe
// for concurrent use.
type Shuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewShuffler returns a Shuffler drawing from src. A nil src uses the
// global generator; pass a seeded source for reproducible tests.
func NewShuffler(src rand.Source) *Shuffler {
	if src == nil {
		return &Shuffler{}
	}
	return &Shuffler{rng: rand.New(src)}
}

// Shuffle sets ShuffledAnswers on every tier and returns ex. Answers is left
// untouched and never shares a backing array with ShuffledAnswers.
func (s *Shuffler) Shuffle(ex *Exercise) *Exercise {
	for _, t := range AllTiers {
		c := ex.Tier(t)
		c.ShuffledAnswers = s.Permute(c.Answers)
	}
	return ex
}

// Permute returns a shuffled copy of items using Fisher–Yates.
func (s *Shuffler) Permute(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)

	intN := rand.IntN
	if s.rng != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		intN = s.rng.IntN
	}

	for i := len(out) - 1; i > 0; i-- {
		j := intN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
