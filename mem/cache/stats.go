package cache

import "fmt"

// Stats is a snapshot of the counters of a cache.
type Stats struct {
	Hit        uint64 `json:"hit"`
	Miss       uint64 `json:"miss"`
	CleanEvict uint64 `json:"clean_evict"`
	DirtyEvict uint64 `json:"dirty_evict"`
}

// Stats sums the counters of every line. It does not reset them.
func (c *Cache) Stats() Stats {
	c.mustBeOpen()

	total := c.lines.TotalStats()

	return Stats{
		Hit:        total.Hit,
		Miss:       total.Miss,
		CleanEvict: total.CleanEvict,
		DirtyEvict: total.DirtyEvict,
	}
}

// Accesses returns the number of loads and stores.
func (s Stats) Accesses() uint64 {
	return s.Hit + s.Miss
}

// Evictions returns the number of evicted lines.
func (s Stats) Evictions() uint64 {
	return s.CleanEvict + s.DirtyEvict
}

// HitRate returns the fraction of accesses that hit, 0 if there was none.
func (s Stats) HitRate() float64 {
	if s.Accesses() == 0 {
		return 0
	}

	return float64(s.Hit) / float64(s.Accesses())
}

func (s Stats) String() string {
	return fmt.Sprintf("Misses: %d\nHits: %d\nClean Evictions: %d\n"+
		"Dirty Evictions: %d\n",
		s.Miss, s.Hit, s.CleanEvict, s.DirtyEvict)
}
