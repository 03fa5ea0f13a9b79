package trivia

import "math/rand/v2"

// Selector draws the next quiz question. It holds no state between calls;
// the caller resends every previously served id.
type Selector struct {
	intN func(n int) int
}

// NewSelector returns a Selector backed by math/rand/v2, which is safe for
// concurrent use and needs no seeding.
func NewSelector() *Selector {
	return &Selector{intN: rand.IntN}
}

// NewSelectorWithSource is used to make draws reproducible.
func NewSelectorWithSource(intN func(n int) int) *Selector {
	return &Selector{intN: intN}
}

// Next picks one question uniformly at random among those in categoryID
// (every category for AllCategories) whose id is not in previous. The bool is
// false when no eligible question remains.
func (s *Selector) Next(corpus []Question, categoryID int64, previous []int64) (Question, bool) {
	q, eligible := s.draw(corpus, categoryID, previous)
	return q, eligible > 0
}

func (s *Selector) draw(corpus []Question, categoryID int64, previous []int64) (Question, int) {
	seen := make(map[int64]struct{}, len(previous))
	for _, id := range previous {
		seen[id] = struct{}{}
	}

	// Reservoir sampling with k=1: the i-th eligible item replaces the pick
	// with probability 1/i.
	var (
		picked   Question
		eligible int
	)
	for _, q := range corpus {
		if categoryID != AllCategories && q.Category != categoryID {
			continue
		}
		if _, ok := seen[q.ID]; ok {
			continue
		}
		eligible++
		if s.intN(eligible) == 0 {
			picked = q
		}
	}
	return picked, eligible
}
