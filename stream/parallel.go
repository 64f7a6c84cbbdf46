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

package stream

import "github.com/chidata/lqf/exec"

// ParallelStream is the result of Stream.Parallel: every subsequent
// PMap/PFilter stage is folded into one composed per-element
// transform, deferred until PCollect/PForeach actually pulls the
// stream. PCollect/PForeach alone drive the upstream pull — always
// single-threaded, per spec.md §4.1 ("upstream iteration of the
// source stream remains single-threaded") — and submit exactly one
// executor task per element to run the whole composed transform, so
// no task ever blocks waiting on another task's future.
type ParallelStream[T any] struct {
	ex        *exec.Executor
	pullRaw   func() (any, bool)
	transform func(any) (T, bool)
}

// Parallel adapts s so that subsequent PMap/PFilter stages run on ex.
func Parallel[T any](s Stream[T], ex *exec.Executor) ParallelStream[T] {
	return ParallelStream[T]{
		ex:        ex,
		pullRaw:   func() (any, bool) { return s.pull() },
		transform: func(v any) (T, bool) { return v.(T), true },
	}
}

// PMap composes f into s's deferred transform.
func PMap[T, U any](s ParallelStream[T], f func(T) U) ParallelStream[U] {
	return ParallelStream[U]{
		ex:      s.ex,
		pullRaw: s.pullRaw,
		transform: func(v any) (U, bool) {
			t, keep := s.transform(v)
			if !keep {
				var zero U
				return zero, false
			}
			return f(t), true
		},
	}
}

// PFilter composes pred into s's deferred transform.
func PFilter[T any](s ParallelStream[T], pred func(T) bool) ParallelStream[T] {
	return ParallelStream[T]{
		ex:      s.ex,
		pullRaw: s.pullRaw,
		transform: func(v any) (T, bool) {
			t, keep := s.transform(v)
			if !keep || !pred(t) {
				var zero T
				return zero, false
			}
			return t, true
		},
	}
}

type pslot[T any] struct {
	val  T
	keep bool
}

// PCollect drives s, submitting one executor task per upstream
// element, and returns the kept elements in upstream order once every
// task has resolved.
func PCollect[T any](s ParallelStream[T]) ([]T, error) {
	var futs []*exec.Future
	var slots []*pslot[T]
	for {
		raw, ok := s.pullRaw()
		if !ok {
			break
		}
		sl := &pslot[T]{}
		slots = append(slots, sl)
		futs = append(futs, s.ex.Submit(func() error {
			sl.val, sl.keep = s.transform(raw)
			return nil
		}))
	}
	out := make([]T, 0, len(slots))
	for i, f := range futs {
		if err := f.Wait(); err != nil {
			return nil, err
		}
		if slots[i].keep {
			out = append(out, slots[i].val)
		}
	}
	return out, nil
}

// PForeach drives s to completion via PCollect (ordering requires
// every element's transform to have run), then calls f with each kept
// element in upstream order. Returning STOP from f ends the callback
// loop early; it does not cancel any transform work, which has already
// completed by the time f runs.
func PForeach[T any](s ParallelStream[T], f func(T) error) error {
	out, err := PCollect(s)
	if err != nil {
		return err
	}
	for _, v := range out {
		if err := f(v); err != nil {
			if err == STOP {
				return nil
			}
			return err
		}
	}
	return nil
}
