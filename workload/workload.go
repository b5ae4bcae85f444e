// Package workload generates the address streams that drive caches.
package workload

import "github.com/sarchlab/cachesim/mem/cache"

// An Accessor is something that loads and stores, typically a *cache.Cache.
type Accessor interface {
	Load(addr uint64) cache.AccessResult
	Store(addr uint64) cache.AccessResult
}

// Progress receives the number of accesses that have been issued.
type Progress interface {
	IncrementFinished(amount uint64)
}

// A Workload is a finite stream of accesses.
type Workload interface {
	// Name describes the workload in reports.
	Name() string

	// Len returns the number of accesses Run issues.
	Len() uint64

	// Run issues every access to the accessor. Progress may be nil.
	Run(acc Accessor, progress Progress) error
}

func report(progress Progress, amount uint64) {
	if progress != nil {
		progress.IncrementFinished(amount)
	}
}
