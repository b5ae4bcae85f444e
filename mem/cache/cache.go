// Package cache models a set-associative cache. It keeps track of which
// addresses are resident and counts hits, misses, and clean and dirty
// evictions for a stream of loads and stores. No data is stored and no timing
// is modelled.
//
// A Cache is not safe for concurrent use.
package cache

import (
	"log"

	"github.com/sarchlab/cachesim/mem/cache/internal/tagging"
	"github.com/sarchlab/cachesim/sim/hooking"
	"github.com/sarchlab/cachesim/sim/naming"
)

// A Cache is a set-associative cache with a fixed replacement policy.
type Cache struct {
	hooking.HookableBase
	naming.NamedBase

	geometry     Geometry
	lines        *tagging.LineStore
	victimFinder tagging.VictimFinder
}

// AccessResult describes what a load or a store did to the cache.
type AccessResult struct {
	Hit   bool
	Tag   uint64
	SetID int
	WayID int

	Evicted      bool
	EvictedTag   uint64
	EvictedDirty bool
}

// LineState is a copy of the state of one line.
type LineState struct {
	Tag   uint64
	Valid bool
	Dirty bool
	Stats Stats
}

// Geometry returns the shape of the cache.
func (c *Cache) Geometry() Geometry {
	return c.geometry
}

// Decompose splits an address into its tag and set index.
func (c *Cache) Decompose(addr uint64) (tag uint64, setID int) {
	return c.geometry.Decompose(addr)
}

// Line returns a copy of the state of a line.
func (c *Cache) Line(setID, wayID int) LineState {
	c.mustBeOpen()

	line := c.lines.Line(setID, wayID)

	return LineState{
		Tag:   line.Tag,
		Valid: line.IsValid,
		Dirty: line.IsDirty,
		Stats: Stats{
			Hit:        line.Stats.Hit,
			Miss:       line.Stats.Miss,
			CleanEvict: line.Stats.CleanEvict,
			DirtyEvict: line.Stats.DirtyEvict,
		},
	}
}

// Close releases the storage of the cache. The cache must not be used after
// it is closed.
func (c *Cache) Close() {
	c.lines = nil
	c.victimFinder = nil
}

func (c *Cache) mustBeOpen() {
	if c.lines == nil {
		panic("cache " + c.Name() + " is used after being closed")
	}
}

// Load brings the line that holds addr into the cache.
func (c *Cache) Load(addr uint64) AccessResult {
	result := c.access(addr)
	c.invokeAccessHook(AccessLoad, addr, result)

	return result
}

// Store loads the line that holds addr and marks it dirty. A store is counted
// as a hit or a miss the same way a load is.
func (c *Cache) Store(addr uint64) AccessResult {
	result := c.access(addr)

	wayID, found := c.lines.Lookup(result.SetID, result.Tag)
	if !found {
		log.Panicf("unable to find set %d, tag %d: "+
			"load functionality failed before store",
			result.SetID, result.Tag)
	}

	c.lines.Line(result.SetID, wayID).IsDirty = true
	c.invokeAccessHook(AccessStore, addr, result)

	return result
}

func (c *Cache) access(addr uint64) AccessResult {
	c.mustBeOpen()

	tag, setID := c.geometry.Decompose(addr)
	result := AccessResult{Tag: tag, SetID: setID}

	if wayID, found := c.lines.Lookup(setID, tag); found {
		c.lines.Line(setID, wayID).Stats.Hit++
		c.victimFinder.Visit(setID, wayID)

		result.Hit = true
		result.WayID = wayID

		return result
	}

	wayID, claimed := c.claim(setID, tag)
	if !claimed {
		evicted := c.evict(setID)
		result.Evicted = true
		result.EvictedTag = evicted.Tag
		result.EvictedDirty = evicted.Dirty

		wayID, claimed = c.claim(setID, tag)
		if !claimed {
			log.Panicf("set %d has no free way after evicting way %d",
				setID, evicted.WayID)
		}
	}

	result.WayID = wayID

	return result
}

// claim fills the first invalid way of the set with the tag.
func (c *Cache) claim(setID int, tag uint64) (wayID int, claimed bool) {
	wayID, found := c.lines.FindInvalid(setID)
	if !found {
		return 0, false
	}

	line := c.lines.Line(setID, wayID)
	line.IsValid = true
	line.Tag = tag
	line.Stats.Miss++
	c.victimFinder.Visit(setID, wayID)

	return wayID, true
}

func (c *Cache) evict(setID int) EvictEvent {
	wayID := c.victimFinder.FindVictim(setID)
	line := c.lines.Line(setID, wayID)

	if line.IsDirty {
		line.Stats.DirtyEvict++
	} else {
		line.Stats.CleanEvict++
	}

	evt := EvictEvent{
		Tag:   line.Tag,
		SetID: setID,
		WayID: wayID,
		Dirty: line.IsDirty,
	}

	line.IsValid = false
	line.IsDirty = false

	c.invokeEvictHook(evt)

	return evt
}
