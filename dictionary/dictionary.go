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

// Package dictionary implements the sorted, deduplicated distinct-value
// arrays that a columnar file's dictionary-encoded pages decode to.
// Dictionaries are immutable after construction and may be shared
// freely across goroutines; only construction is single-threaded.
package dictionary

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/exp/slices"
)

// Ordinal is a dictionary index: the encoded representation of a value
// in a dictionary-coded column.
type Ordinal int32

// Dictionary is an immutable, ascending-sorted, deduplicated array of
// distinct column values of type T.
type Dictionary[T any] struct {
	values []T
	cmp    func(a, b T) int
	raw    [][]byte // byte representation of each value, for Fingerprint
}

// New builds a Dictionary from values already in sorted, deduplicated
// order (as produced by the file format's dictionary page encoder).
// cmp must agree with that order. raw, if non-nil, is the byte
// encoding of each value in the same order and is used only by
// Fingerprint; callers that do not need Fingerprint may pass nil.
func New[T any](sorted []T, cmp func(a, b T) int, raw [][]byte) *Dictionary[T] {
	return &Dictionary[T]{values: sorted, cmp: cmp, raw: raw}
}

// Len returns the number of distinct values.
func (d *Dictionary[T]) Len() int { return len(d.values) }

// At returns the value at ordinal i.
func (d *Dictionary[T]) At(i Ordinal) T { return d.values[i] }

// Lookup returns the ordinal i such that At(i) == k, or, if k is not
// present, -(insertionPoint)-1 where insertionPoint is where k would
// be inserted to keep the dictionary sorted. The sign bit of the
// result therefore indicates a miss, matching spec.md's contract.
func (d *Dictionary[T]) Lookup(k T) Ordinal {
	i, found := slices.BinarySearchFunc(d.values, k, d.cmp)
	if found {
		return Ordinal(i)
	}
	return -Ordinal(i) - 1
}

// List returns every ordinal whose value satisfies pred, in ascending
// order.
func (d *Dictionary[T]) List(pred func(T) bool) []Ordinal {
	var out []Ordinal
	for i, v := range d.values {
		if pred(v) {
			out = append(out, Ordinal(i))
		}
	}
	return out
}

// Range returns every ordinal whose value lies in [lo, hi) according
// to cmp, using binary search on both ends. This is the fast path for
// range predicates: O(log n + k) instead of the O(n) scan in List.
func (d *Dictionary[T]) Range(lo, hi T) []Ordinal {
	start, _ := slices.BinarySearchFunc(d.values, lo, d.cmp)
	end, _ := slices.BinarySearchFunc(d.values, hi, d.cmp)
	if end <= start {
		return nil
	}
	out := make([]Ordinal, end-start)
	for i := range out {
		out[i] = Ordinal(start + i)
	}
	return out
}

// Fingerprint returns a content hash of the dictionary's raw byte
// encoding. Two dictionaries with equal fingerprints can be assumed,
// for the purposes of the dictionary-key join fast path (spec.md
// §4.5), to encode the same ordinal-to-value mapping without a
// value-by-value comparison. A Dictionary constructed with a nil raw
// slice hashes no bytes, so every such Dictionary has the same
// fingerprint (the hash of empty input).
func (d *Dictionary[T]) Fingerprint() [32]byte {
	h, _ := blake2b.New256(nil)
	var lenbuf [8]byte
	for _, r := range d.raw {
		binary.LittleEndian.PutUint64(lenbuf[:], uint64(len(r)))
		h.Write(lenbuf[:])
		h.Write(r)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
