package probetab

import "sync/atomic"

// Stats is a table's block of monotonically increasing operation
// counters. Updates are single atomic adds with no ordering relative to
// the slot array: the counters are diagnostic and never feed back into
// the probing algorithm.
type Stats struct {
	insert      atomic.Uint64
	remove      atomic.Uint64
	search      atomic.Uint64
	collision   atomic.Uint64
	overwritten atomic.Uint64
	insertErr   atomic.Uint64
	removeErr   atomic.Uint64
	searchOK    atomic.Uint64
	searchErr   atomic.Uint64
}

// StatsSnapshot is a point-in-time copy of a table's counters.
//
// Insert, Remove and Search count attempts and are bumped exactly once
// per call, before the probe loop, regardless of outcome. Collision
// counts probe steps that hit a foreign key. Overwritten counts
// re-inserts of a present key. The Err counters record exhausted probe
// windows; SearchOK records successful finds.
type StatsSnapshot struct {
	Insert      uint64
	Remove      uint64
	Search      uint64
	Collision   uint64
	Overwritten uint64
	InsertErr   uint64
	RemoveErr   uint64
	SearchOK    uint64
	SearchErr   uint64
}

// Snapshot copies the counters. Concurrent operations may be mid-update;
// no mutual consistency across counters is promised.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Insert:      s.insert.Load(),
		Remove:      s.remove.Load(),
		Search:      s.search.Load(),
		Collision:   s.collision.Load(),
		Overwritten: s.overwritten.Load(),
		InsertErr:   s.insertErr.Load(),
		RemoveErr:   s.removeErr.Load(),
		SearchOK:    s.searchOK.Load(),
		SearchErr:   s.searchErr.Load(),
	}
}

// Ops returns the aggregate insert+remove+search attempt count.
func (s StatsSnapshot) Ops() uint64 {
	return s.Insert + s.Remove + s.Search
}
