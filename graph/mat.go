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

package graph

import (
	"github.com/chidata/lqf/ops"
	"github.com/chidata/lqf/rowcopy"
	"github.com/chidata/lqf/table"
)

// FilterMatNode forces every input block into a dense RowBlock via
// ops.FilterMat, per spec.md §4.8: useful after a MaskedTable chain
// that a downstream consumer would rather iterate densely than walk
// around a live-position bitmap repeatedly.
type FilterMatNode struct {
	kinds []rowcopy.FieldKind
}

// NewFilterMatNode builds a FilterMatNode describing the input's field
// kinds.
func NewFilterMatNode(kinds []rowcopy.FieldKind) *FilterMatNode {
	return &FilterMatNode{kinds: kinds}
}

func (n *FilterMatNode) Arity() int { return 1 }

func (n *FilterMatNode) Execute(inputs []table.Table) (table.Table, error) {
	in := inputs[0]
	out := table.NewMemTable(in.ColSize(), false)
	it := in.Blocks()
	for {
		b, ok := it.Next()
		if !ok {
			break
		}
		out.Append(ops.FilterMat(b, n.kinds))
	}
	return out, nil
}

// HashMatNode forces every input block into n dense, hash-partitioned
// RowBlocks via ops.HashMat, per spec.md §4.8's hash-partitioning hint.
// Every input block contributes all n bucket blocks (empty buckets
// included), appended in bucket order as separate blocks of the output
// table, so the output's blocks line up one-to-one with buckets only
// when the input was a single block.
type HashMatNode struct {
	kinds []rowcopy.FieldKind
	hash  ops.KeyFunc
	n     int
}

// NewHashMatNode builds a HashMatNode partitioning into n buckets by
// hash.
func NewHashMatNode(kinds []rowcopy.FieldKind, hash ops.KeyFunc, n int) *HashMatNode {
	return &HashMatNode{kinds: kinds, hash: hash, n: n}
}

func (m *HashMatNode) Arity() int { return 1 }

func (m *HashMatNode) Execute(inputs []table.Table) (table.Table, error) {
	in := inputs[0]
	out := table.NewMemTable(in.ColSize(), false)
	it := in.Blocks()
	for {
		b, ok := it.Next()
		if !ok {
			break
		}
		for _, bucket := range ops.HashMat(b, m.kinds, m.hash, m.n) {
			out.Append(bucket)
		}
	}
	return out, nil
}
