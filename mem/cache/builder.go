package cache

import (
	"log"

	"github.com/sarchlab/cachesim/mem/cache/internal/tagging"
	"github.com/sarchlab/cachesim/sim/naming"
)

// Builder can build caches.
type Builder struct {
	numSets  uint32
	lineSize uint32
	numWays  uint32
	policy   string
	logger   *log.Logger
}

// MakeBuilder creates a new builder with a 1024-set, 8-byte line, 8-way LRU
// configuration.
func MakeBuilder() Builder {
	return Builder{
		numSets:  1024,
		lineSize: 8,
		numWays:  8,
		policy:   "LRU",
		logger:   log.Default(),
	}
}

// WithNumSets sets the number of sets. It must be a power of 2.
func (b Builder) WithNumSets(numSets uint32) Builder {
	b.numSets = numSets
	return b
}

// WithLineSize sets the number of bytes in a cache line. It must be a power
// of 2.
func (b Builder) WithLineSize(lineSize uint32) Builder {
	b.lineSize = lineSize
	return b
}

// WithWayAssociativity sets the number of ways in each set. It must be a power
// of 2 no larger than MaxWays.
func (b Builder) WithWayAssociativity(numWays uint32) Builder {
	b.numWays = numWays
	return b
}

// WithReplacementPolicy sets the replacement policy, either "LRU" or "PLRU".
func (b Builder) WithReplacementPolicy(policy string) Builder {
	b.policy = policy
	return b
}

// WithLogger sets the logger that receives the sizing messages. A nil logger
// silences them.
func (b Builder) WithLogger(logger *log.Logger) Builder {
	b.logger = logger
	return b
}

// Validate reports whether Build would succeed.
func (b Builder) Validate() error {
	_, err := NewGeometry(b.numSets, b.lineSize, b.numWays, b.policy)
	return err
}

// Build builds a cache. It panics if the configuration or the name is invalid;
// call Validate first to handle configuration errors gracefully.
func (b Builder) Build(name string) *Cache {
	geometry, err := NewGeometry(b.numSets, b.lineSize, b.numWays, b.policy)
	if err != nil {
		panic(err)
	}

	c := &Cache{
		NamedBase: naming.MakeNamedBase(name),
		geometry:  geometry,
	}

	if b.logger != nil {
		b.logger.Printf("Allocating %d lines\n", geometry.NumLines())
	}

	c.lines = tagging.NewLineStore(geometry.NumSets(), geometry.Ways)
	c.victimFinder = b.createVictimFinder(geometry)

	if b.logger != nil {
		b.logger.Printf("creating cache with %d sets, %d byte lines, %d ways "+
			"and %s replacement policy\n",
			geometry.NumSets(), geometry.LineSize(), geometry.Ways,
			geometry.Policy)
	}

	return c
}

func (b Builder) createVictimFinder(g Geometry) tagging.VictimFinder {
	switch g.Policy {
	case PolicyLRU:
		return tagging.NewRecencyStack(g.NumSets(), g.Ways)
	case PolicyPLRU:
		return tagging.NewTournamentTree(g.NumSets(), g.Ways)
	default:
		panic("unknown replacement policy: " + g.Policy.String())
	}
}

// New creates a cache with the given shape. Unlike Builder.Build, an invalid
// configuration is reported as an error and no cache is created.
func New(sets, lineSize, ways uint32, policy string) (*Cache, error) {
	b := MakeBuilder().
		WithNumSets(sets).
		WithLineSize(lineSize).
		WithWayAssociativity(ways).
		WithReplacementPolicy(policy)

	if err := b.Validate(); err != nil {
		return nil, err
	}

	return b.Build("Cache"), nil
}
