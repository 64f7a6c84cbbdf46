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

// Package stream implements the lazy, single-pass Stream[T] of
// spec.md §4.1: map/filter/foreach/collect, plus a parallel() adapter
// (see parallel.go) that hands subsequent map/filter stages to the
// exec package's worker pool while preserving the upstream iteration
// order on collect.
package stream

import "errors"

// STOP is returned by a Foreach callback to end iteration early
// without it being treated as a failure.
var STOP = errors.New("stream: stop")

// Stream is a lazy pull sequence of T. The zero value is not usable;
// build one with FromFunc, FromSlice, or an adapter package (table's
// BlockIterator has no direct adapter here to avoid an import cycle;
// callers wrap it with FromFunc).
type Stream[T any] struct {
	pull func() (T, bool)
}

// FromFunc builds a Stream from a raw pull function.
func FromFunc[T any](pull func() (T, bool)) Stream[T] {
	return Stream[T]{pull: pull}
}

// FromSlice builds a Stream that yields every element of items, in
// order, exactly once.
func FromSlice[T any](items []T) Stream[T] {
	i := 0
	return Stream[T]{pull: func() (T, bool) {
		if i >= len(items) {
			var zero T
			return zero, false
		}
		v := items[i]
		i++
		return v, true
	}}
}

// Next pulls the next element, if any. Exposed so adapters (Parallel)
// can drive the stream directly.
func (s Stream[T]) Next() (T, bool) { return s.pull() }

// Map returns a stream that applies f to every element of s.
func Map[T, U any](s Stream[T], f func(T) U) Stream[U] {
	return Stream[U]{pull: func() (U, bool) {
		v, ok := s.pull()
		if !ok {
			var zero U
			return zero, false
		}
		return f(v), true
	}}
}

// Filter returns a stream that skips elements where pred is false.
func Filter[T any](s Stream[T], pred func(T) bool) Stream[T] {
	return Stream[T]{pull: func() (T, bool) {
		for {
			v, ok := s.pull()
			if !ok {
				var zero T
				return zero, false
			}
			if pred(v) {
				return v, true
			}
		}
	}}
}

// Foreach drives s to completion, calling f with every element in
// order. It is always sequential, even downstream of Parallel: only
// collect() preserves order under concurrent evaluation (spec.md
// §4.1). Returning STOP from f ends iteration early without error.
func Foreach[T any](s Stream[T], f func(T) error) error {
	for {
		v, ok := s.pull()
		if !ok {
			return nil
		}
		if err := f(v); err != nil {
			if errors.Is(err, STOP) {
				return nil
			}
			return err
		}
	}
}

// Collect drives s to completion and returns every element in order.
func Collect[T any](s Stream[T]) []T {
	var out []T
	for {
		v, ok := s.pull()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}
