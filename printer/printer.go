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

package printer

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/chidata/lqf/block"
	"github.com/chidata/lqf/table"
)

// Kind names how a Column's field should be decoded for display.
type Kind int

const (
	// Int formats the field with DataField.AsInt.
	Int Kind = iota
	// Double formats the field with DataField.AsDouble.
	Double
	// Bytes formats the field with DataField.AsBytes, as a string.
	Bytes
	// Dict formats the field as a dictionary ordinal resolved through
	// the Column's Dict resolver (DICT(i) in spec.md §6).
	Dict
)

// Resolver turns a raw dictionary ordinal into its display string. A
// dictionary.Dictionary[T] satisfies this via StringDict.
type Resolver interface {
	Resolve(ordinal int32) string
}

// StringDict adapts any dictionary value type T into a Resolver, given
// a way to render a looked-up value as a string.
type StringDict[T any] struct {
	At     func(ordinal int32) T
	Format func(T) string
}

func (d StringDict[T]) Resolve(ordinal int32) string { return d.Format(d.At(ordinal)) }

// Column names one output column to print and how to decode it.
type Column struct {
	Index int
	Kind  Kind
	// Dict is required, and used only, when Kind == Dict.
	Dict Resolver
}

// Printer formats selected columns of every row of a table, one row
// per line, tab-separated, to an io.Writer. It is the only consumer of
// its output table: Print never returns rows for a caller to chain
// further.
type Printer struct {
	w    *bufio.Writer
	cols []Column
}

// New builds a Printer writing to w, selecting cols in order.
func New(w io.Writer, cols []Column) *Printer {
	return &Printer{w: bufio.NewWriter(w), cols: append([]Column(nil), cols...)}
}

// Print writes every row of t to the Printer's writer, in block then
// row order -- the order table.Table.Blocks hands blocks back in,
// which for a table produced by a graph.Graph node is only guaranteed
// deterministic once that node's own "collect" point (if any) has run,
// per spec.md §5.
func (p *Printer) Print(t table.Table) error {
	it := t.Blocks()
	for {
		b, ok := it.Next()
		if !ok {
			break
		}
		if err := p.printBlock(b); err != nil {
			return err
		}
	}
	return p.w.Flush()
}

func (p *Printer) printBlock(b block.Block) error {
	rows := b.Rows()
	for {
		row, ok := rows.Next()
		if !ok {
			return nil
		}
		for i, c := range p.cols {
			if i > 0 {
				if _, err := p.w.WriteString("\t"); err != nil {
					return err
				}
			}
			if err := p.printField(row.Field(c.Index), c); err != nil {
				return err
			}
		}
		if _, err := p.w.WriteString("\n"); err != nil {
			return err
		}
	}
}

func (p *Printer) printField(f block.DataField, c Column) error {
	var s string
	switch c.Kind {
	case Int:
		s = strconv.FormatInt(f.AsInt(), 10)
	case Double:
		s = strconv.FormatFloat(f.AsDouble(), 'g', -1, 64)
	case Bytes:
		s = string(f.AsBytes())
	case Dict:
		if c.Dict == nil {
			return fmt.Errorf("printer: column %d: Kind is Dict but Dict resolver is nil", c.Index)
		}
		s = c.Dict.Resolve(f.AsRawOrdinal())
	default:
		return fmt.Errorf("printer: column %d: unknown Kind %d", c.Index, c.Kind)
	}
	_, err := p.w.WriteString(s)
	return err
}
