package tagging

import "fmt"

// TournamentTree implements tree pseudo-LRU replacement. Each set owns a
// binary tree of numWays-1 one-bit nodes in heap layout: the root is at index
// 1 and the children of node i are at 2i and 2i+1. A 0 bit points the next
// victim search to the left subtree and a 1 bit to the right subtree.
type TournamentTree struct {
	numWays int

	// Each set takes numWays slots, slot 0 is never used.
	bits []uint8
}

// NewTournamentTree returns a newly constructed tree pseudo-LRU victim
// finder. The number of ways must be a power of two.
func NewTournamentTree(numSets, numWays int) *TournamentTree {
	if numWays <= 0 || numWays&(numWays-1) != 0 {
		panic(fmt.Sprintf("tournament tree needs a power-of-two way count, "+
			"got %d", numWays))
	}

	return &TournamentTree{
		numWays: numWays,
		bits:    make([]uint8, numSets*numWays),
	}
}

func (t *TournamentTree) tree(setID int) []uint8 {
	start := setID * t.numWays
	return t.bits[start : start+t.numWays]
}

// FindVictim follows the node bits from the root to a leaf and returns the way
// at that leaf.
func (t *TournamentTree) FindVictim(setID int) int {
	tree := t.tree(setID)
	window := t.numWays >> 1
	victim := 0

	for idx := 1; idx < t.numWays; window >>= 1 {
		switch tree[idx] {
		case 0:
			idx <<= 1
		case 1:
			idx = idx<<1 + 1
			victim += window
		default:
			panic(fmt.Sprintf(
				"PLRU functionality failed for set %d, node %d holds %d",
				setID, idx, tree[idx]))
		}
	}

	return victim
}

// Visit walks the path from the root to the way and points every node on the
// path away from the half that contains the way.
func (t *TournamentTree) Visit(setID, wayID int) {
	tree := t.tree(setID)
	idx := 1

	for half := t.numWays >> 1; half > 0; half >>= 1 {
		if wayID < half {
			tree[idx] = 1
			idx <<= 1

			continue
		}

		tree[idx] = 0
		idx = idx<<1 + 1
		wayID -= half
	}
}

// Bits returns a copy of the node bits of the set. Index 0 is unused.
func (t *TournamentTree) Bits(setID int) []uint8 {
	bits := make([]uint8, t.numWays)
	copy(bits, t.tree(setID))

	return bits
}
