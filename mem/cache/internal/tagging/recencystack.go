package tagging

import "fmt"

// RecencyStack implements exact LRU replacement. Every way of a set carries a
// rank, 0 being the most recently used and numWays-1 the least recently used.
// Within a set the ranks always form a permutation of [0, numWays-1].
type RecencyStack struct {
	numWays int
	ranks   []int
}

// NewRecencyStack returns a newly constructed recency stack. The rank of each
// way is seeded with its way index.
func NewRecencyStack(numSets, numWays int) *RecencyStack {
	s := &RecencyStack{
		numWays: numWays,
		ranks:   make([]int, numSets*numWays),
	}

	for i := range s.ranks {
		s.ranks[i] = i % numWays
	}

	return s
}

func (s *RecencyStack) set(setID int) []int {
	start := setID * s.numWays
	return s.ranks[start : start+s.numWays]
}

// FindVictim returns the least recently used way of the set.
func (s *RecencyStack) FindVictim(setID int) int {
	ranks := s.set(setID)
	for wayID, rank := range ranks {
		if rank == s.numWays-1 {
			return wayID
		}
	}

	panic(fmt.Sprintf("LRU functionality failed for set %d, ranks %v",
		setID, ranks))
}

// Visit moves the way to the most recently used position. Ways that were more
// recent than it age by one, older ways keep their ranks.
func (s *RecencyStack) Visit(setID, wayID int) {
	ranks := s.set(setID)
	oldRank := ranks[wayID]

	for i := range ranks {
		if i != wayID && ranks[i] < oldRank {
			ranks[i]++
		}
	}

	ranks[wayID] = 0
}

// Ranks returns a copy of the ranks of the set, indexed by way.
func (s *RecencyStack) Ranks(setID int) []int {
	ranks := make([]int, s.numWays)
	copy(ranks, s.set(setID))

	return ranks
}
