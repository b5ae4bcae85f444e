package tagging

// LineStats counts the events that happened to a single line.
type LineStats struct {
	Hit        uint64
	Miss       uint64
	CleanEvict uint64
	DirtyEvict uint64
}

// Add accumulates the counters of other into s.
func (s *LineStats) Add(other LineStats) {
	s.Hit += other.Hit
	s.Miss += other.Miss
	s.CleanEvict += other.CleanEvict
	s.DirtyEvict += other.DirtyEvict
}

// A Line is the information that is associated with one way of one set. The
// Tag is only meaningful while IsValid is set.
type Line struct {
	Tag     uint64
	SetID   int
	WayID   int
	IsValid bool
	IsDirty bool
	Stats   LineStats
}

// A LineStore holds the lines of all the sets in a flat slice, set-major.
type LineStore struct {
	NumSets int
	NumWays int
	Lines   []Line
}

// NewLineStore allocates numSets*numWays invalid lines.
func NewLineStore(numSets, numWays int) *LineStore {
	s := &LineStore{
		NumSets: numSets,
		NumWays: numWays,
	}

	s.Reset()

	return s
}

// Reset marks every line invalid and clears all the counters.
func (s *LineStore) Reset() {
	s.Lines = make([]Line, s.NumSets*s.NumWays)

	for setID := 0; setID < s.NumSets; setID++ {
		for wayID := 0; wayID < s.NumWays; wayID++ {
			line := &s.Lines[setID*s.NumWays+wayID]
			line.SetID = setID
			line.WayID = wayID
		}
	}
}

// Set returns the lines of a set. The returned slice aliases the store.
func (s *LineStore) Set(setID int) []Line {
	start := setID * s.NumWays
	return s.Lines[start : start+s.NumWays]
}

// Line returns the line at the given position.
func (s *LineStore) Line(setID, wayID int) *Line {
	return &s.Lines[setID*s.NumWays+wayID]
}

// Lookup finds the valid line in the set that carries the tag.
func (s *LineStore) Lookup(setID int, tag uint64) (wayID int, found bool) {
	for i, line := range s.Set(setID) {
		if line.IsValid && line.Tag == tag {
			return i, true
		}
	}

	return 0, false
}

// FindInvalid returns the first way of the set that does not hold a line.
func (s *LineStore) FindInvalid(setID int) (wayID int, found bool) {
	for i, line := range s.Set(setID) {
		if !line.IsValid {
			return i, true
		}
	}

	return 0, false
}

// TotalStats sums the counters of every line.
func (s *LineStore) TotalStats() LineStats {
	total := LineStats{}
	for _, line := range s.Lines {
		total.Add(line.Stats)
	}

	return total
}
