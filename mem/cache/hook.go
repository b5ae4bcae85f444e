package cache

import "github.com/sarchlab/cachesim/sim/hooking"

// Hook positions of a cache.
var (
	// HookPosAccess is triggered after every load or store, with an
	// AccessEvent as the item.
	HookPosAccess = &hooking.HookPos{Name: "CacheAccess"}

	// HookPosEvict is triggered when a line is evicted, with an EvictEvent as
	// the item.
	HookPosEvict = &hooking.HookPos{Name: "CacheEvict"}
)

// AccessKind tells loads and stores apart.
type AccessKind int

// The kinds of accesses.
const (
	AccessLoad AccessKind = iota
	AccessStore
)

func (k AccessKind) String() string {
	if k == AccessStore {
		return "store"
	}

	return "load"
}

// AccessEvent describes a completed access.
type AccessEvent struct {
	Kind    AccessKind
	Address uint64
	Tag     uint64
	SetID   int
	WayID   int
	Hit     bool
}

// EvictEvent describes a line leaving the cache.
type EvictEvent struct {
	Tag   uint64
	SetID int
	WayID int
	Dirty bool
}

func (c *Cache) invokeAccessHook(kind AccessKind, addr uint64, r AccessResult) {
	if c.NumHooks() == 0 {
		return
	}

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosAccess,
		Item: AccessEvent{
			Kind:    kind,
			Address: addr,
			Tag:     r.Tag,
			SetID:   r.SetID,
			WayID:   r.WayID,
			Hit:     r.Hit,
		},
	})
}

func (c *Cache) invokeEvictHook(evt EvictEvent) {
	if c.NumHooks() == 0 {
		return
	}

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosEvict,
		Item:   evt,
	})
}
