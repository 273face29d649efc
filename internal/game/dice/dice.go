// Package dice rolls the damage expressions carried by weapon definitions.
package dice

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// RollResult holds the audit trail for a single damage roll.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string // original expression string, e.g. "2d6+3"
	Dice       []int  // individual die results before modifier
	Modifier   int    // flat modifier (may be negative)
}

// Total returns the sum of all die results plus the modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String returns a compact audit string such as "2d6+3 [4 5] = 12".
func (r RollResult) String() string {
	return fmt.Sprintf("%s %v = %d", r.Expression, r.Dice, r.Total())
}

// Source is the randomness provider for dice rolls.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// pcgSource is a seeded, deterministic Source.
type pcgSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource returns a deterministic Source seeded with seed.
//
// Postcondition: two sources with the same seed produce the same sequence.
func NewSeededSource(seed uint64) Source {
	return &pcgSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Intn panics when n <= 0.
func (s *pcgSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// FixedSource replays the given values in order and wraps around.
// Each value is reduced modulo n. Intended for tests.
type FixedSource struct {
	Values []int
	next   int
}

// Intn returns the next scripted value modulo n, or 0 when Values is empty.
func (f *FixedSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	if len(f.Values) == 0 {
		return 0
	}
	v := f.Values[f.next%len(f.Values)]
	f.next++
	return ((v % n) + n) % n
}
