package cache

import (
	"errors"
	"fmt"
	"math/bits"
)

// MaxWays is the highest associativity a cache can be built with.
const MaxWays = 64

var (
	// ErrInvalidGeometry is returned when the number of sets, the line size,
	// or the number of ways is not a power of two.
	ErrInvalidGeometry = errors.New("sets, line size, and ways must be " +
		"powers of 2")

	// ErrUnknownPolicy is returned for a replacement policy name that is
	// neither "LRU" nor "PLRU".
	ErrUnknownPolicy = errors.New("unknown replacement policy")
)

// PolicyKind selects the replacement policy of a cache.
type PolicyKind int

// The supported replacement policies.
const (
	PolicyLRU PolicyKind = iota
	PolicyPLRU
)

func (k PolicyKind) String() string {
	switch k {
	case PolicyLRU:
		return "LRU"
	case PolicyPLRU:
		return "PLRU"
	default:
		return fmt.Sprintf("PolicyKind(%d)", int(k))
	}
}

// ParsePolicy converts a policy name into a PolicyKind. Names are case
// sensitive.
func ParsePolicy(name string) (PolicyKind, error) {
	switch name {
	case "LRU":
		return PolicyLRU, nil
	case "PLRU":
		return PolicyPLRU, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// Geometry describes the shape of a cache and how addresses are split into
// tag, set index, and line offset.
type Geometry struct {
	SetBits    uint8
	OffsetBits uint8
	Ways       int
	Policy     PolicyKind
}

// NewGeometry validates the cache shape and encodes it.
func NewGeometry(
	sets, lineSize, ways uint32,
	policy string,
) (Geometry, error) {
	if !isPowerOfTwo(sets) || !isPowerOfTwo(lineSize) || !isPowerOfTwo(ways) {
		return Geometry{}, fmt.Errorf("%w: sets=%d, line size=%d, ways=%d",
			ErrInvalidGeometry, sets, lineSize, ways)
	}

	if ways > MaxWays {
		return Geometry{}, fmt.Errorf("%w: %d ways exceeds the maximum of %d",
			ErrInvalidGeometry, ways, MaxWays)
	}

	kind, err := ParsePolicy(policy)
	if err != nil {
		return Geometry{}, err
	}

	return Geometry{
		SetBits:    uint8(bits.TrailingZeros32(sets)),
		OffsetBits: uint8(bits.TrailingZeros32(lineSize)),
		Ways:       int(ways),
		Policy:     kind,
	}, nil
}

func isPowerOfTwo(n uint32) bool {
	return bits.OnesCount32(n) == 1
}

// NumSets returns the number of sets.
func (g Geometry) NumSets() int {
	return 1 << g.SetBits
}

// LineSize returns the number of bytes in a line.
func (g Geometry) LineSize() uint64 {
	return 1 << g.OffsetBits
}

// NumLines returns the number of lines across all the sets.
func (g Geometry) NumLines() int {
	return g.NumSets() * g.Ways
}

// TotalSize returns the number of bytes the cache can hold.
func (g Geometry) TotalSize() uint64 {
	return uint64(g.NumLines()) * g.LineSize()
}

// Decompose splits an address into its tag and set index.
func (g Geometry) Decompose(addr uint64) (tag uint64, setID int) {
	tag = addr >> (g.SetBits + g.OffsetBits)
	setID = int((addr >> g.OffsetBits) & uint64(g.NumSets()-1))

	return tag, setID
}
