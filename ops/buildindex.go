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

package ops

import "github.com/chidata/lqf/hashtable"

// buildIndex is the surface every hash operator's build side needs:
// store a payload under a 64-bit key, read it back by key or list every
// payload sharing a key. hashtable.Table already satisfies this
// directly. denseIndex adapts hashtable.Hash32Sparse to it, for build
// sides a caller declares to be keyed by small dense integers (typical
// surrogate keys), per spec.md §4.5's two build-container shapes.
type buildIndex[V any] interface {
	Put(key uint64, v V)
	Get(key uint64) (V, bool)
	GetAll(key uint64) ([]V, bool)
	Has(key uint64) bool
}

func newBuildIndex[V any](dense bool) buildIndex[V] {
	if dense {
		return newDenseIndex[V]()
	}
	return hashtable.NewTable[V]()
}

// denseIndex adapts Hash32Sparse (single payload per 32-bit key) to the
// buildIndex contract's 1:N semantics by storing a payload slice per
// key and truncating the 64-bit key to 32 bits, per spec.md §4.5's
// note that the dense container only makes sense for keys that fit in
// that range to begin with.
type denseIndex[V any] struct {
	h *hashtable.Hash32Sparse[[]V]
}

func newDenseIndex[V any]() *denseIndex[V] {
	return &denseIndex[V]{h: hashtable.NewHash32Sparse[[]V]()}
}

func (d *denseIndex[V]) Put(key uint64, v V) {
	k := uint32(key)
	vs, _ := d.h.Get(k)
	d.h.Put(k, append(vs, v))
}

func (d *denseIndex[V]) Get(key uint64) (V, bool) {
	vs, ok := d.h.Get(uint32(key))
	if !ok || len(vs) == 0 {
		var zero V
		return zero, false
	}
	return vs[0], true
}

func (d *denseIndex[V]) GetAll(key uint64) ([]V, bool) {
	return d.h.Get(uint32(key))
}

func (d *denseIndex[V]) Has(key uint64) bool {
	return d.h.Has(uint32(key))
}
