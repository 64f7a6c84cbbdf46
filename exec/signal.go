// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package exec implements the fixed-size worker pool spec.md §5 calls
// the scheduling model: a single Executor submits tasks from any
// number of producers (the stream package's parallel() adapter) onto
// a bounded set of goroutine workers, the same queue/condvar shape as
// the teacher's sorting.ThreadPool, generalized from sort-range
// requests to arbitrary closures.
package exec

import "sync"

// Signal is a thin wrapper around sync.Cond: the one suspension point
// spec.md §5 names besides Stream.collect/foreach and Executor.Submit
// ("Signal.wait (worker idle)"). Unlike sync.Cond, Wait takes its own
// predicate so callers never forget the re-check loop around a
// spurious or broadcast-to-everyone wakeup.
//
// Signal does not own a lock: NewSignal takes the caller's own
// sync.Locker (typically a *sync.Mutex also guarding the state `until`
// inspects), the same relationship sync.NewCond expects.
type Signal struct {
	cond *sync.Cond
}

// NewSignal returns a Signal backed by l. The caller must hold l
// locked around both Wait and any mutation of the state Wait's
// predicate reads.
func NewSignal(l sync.Locker) *Signal {
	return &Signal{cond: sync.NewCond(l)}
}

// Wait blocks until until() returns true, re-checking after every
// wakeup. The caller must hold the signal's lock.
func (s *Signal) Wait(until func() bool) {
	for !until() {
		s.cond.Wait()
	}
}

// Broadcast wakes every goroutine blocked in Wait.
func (s *Signal) Broadcast() { s.cond.Broadcast() }
