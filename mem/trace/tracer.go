// Package trace provides hooks that record the accesses and evictions of
// caches.
package trace

import (
	"fmt"
	"log"

	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/sim/hooking"
	"github.com/sarchlab/cachesim/sim/id"
	"github.com/sarchlab/cachesim/sim/naming"
)

const (
	accessTable   = "cache_accesses"
	evictionTable = "cache_evictions"
)

// accessEntry represents a cache access in the database. Addresses and tags
// are stored as hex strings since SQLite integers are signed.
type accessEntry struct {
	ID      string
	Cache   string
	Kind    string
	Address string
	Tag     string
	SetID   int
	WayID   int
	Hit     bool
}

// evictionEntry represents an evicted line in the database.
type evictionEntry struct {
	ID    string
	Cache string
	Tag   string
	SetID int
	WayID int
	Dirty bool
}

func domainName(ctx hooking.HookCtx) string {
	if n, ok := ctx.Domain.(naming.Named); ok {
		return n.Name()
	}

	return ""
}

// A tracer is a hook that writes the actions of a cache as text lines.
type tracer struct {
	logger *log.Logger
	idGen  id.IDGenerator
}

// NewTracer creates a hook that prints one line per access and per eviction.
func NewTracer(logger *log.Logger) hooking.Hook {
	return &tracer{
		logger: logger,
		idGen:  id.NewIDGenerator(),
	}
}

func (t *tracer) Func(ctx hooking.HookCtx) {
	switch item := ctx.Item.(type) {
	case cache.AccessEvent:
		t.logger.Printf("access, %s, %s, %s, 0x%x, %d, %d, %s\n",
			t.idGen.Generate(),
			domainName(ctx),
			item.Kind,
			item.Address,
			item.SetID,
			item.WayID,
			hitOrMiss(item.Hit))
	case cache.EvictEvent:
		t.logger.Printf("evict, %s, %s, %d, %d, %s\n",
			t.idGen.Generate(),
			domainName(ctx),
			item.SetID,
			item.WayID,
			cleanOrDirty(item.Dirty))
	}
}

func hitOrMiss(hit bool) string {
	if hit {
		return "hit"
	}

	return "miss"
}

func cleanOrDirty(dirty bool) string {
	if dirty {
		return "dirty"
	}

	return "clean"
}

// A dbTracer is a hook that records the actions of a cache into a database
// using the data recorder.
type dbTracer struct {
	dataRecorder datarecording.DataRecorder
	idGen        id.IDGenerator
}

// NewDBTracer creates a database-based hook that labels its rows with IDs from
// idGen. It creates its tables in the recorder, so only one DB tracer can be
// created per recorder. The same hook can be attached to several caches.
func NewDBTracer(
	dataRecorder datarecording.DataRecorder,
	idGen id.IDGenerator,
) hooking.Hook {
	t := &dbTracer{
		dataRecorder: dataRecorder,
		idGen:        idGen,
	}

	t.dataRecorder.CreateTable(accessTable, accessEntry{})
	t.dataRecorder.CreateTable(evictionTable, evictionEntry{})

	return t
}

func (t *dbTracer) Func(ctx hooking.HookCtx) {
	switch item := ctx.Item.(type) {
	case cache.AccessEvent:
		t.dataRecorder.InsertData(accessTable, accessEntry{
			ID:      t.idGen.Generate(),
			Cache:   domainName(ctx),
			Kind:    item.Kind.String(),
			Address: fmt.Sprintf("0x%x", item.Address),
			Tag:     fmt.Sprintf("0x%x", item.Tag),
			SetID:   item.SetID,
			WayID:   item.WayID,
			Hit:     item.Hit,
		})
	case cache.EvictEvent:
		t.dataRecorder.InsertData(evictionTable, evictionEntry{
			ID:    t.idGen.Generate(),
			Cache: domainName(ctx),
			Tag:   fmt.Sprintf("0x%x", item.Tag),
			SetID: item.SetID,
			WayID: item.WayID,
			Dirty: item.Dirty,
		})
	}
}
