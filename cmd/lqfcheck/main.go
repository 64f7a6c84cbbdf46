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

// Command lqfcheck loads an engine.Config (or falls back to its
// defaults) and runs a small, entirely in-memory self-check graph end
// to end: a source table feeds a ColFilter, a HashAgg, and a Printer
// tap, exercising graph/ops/table/printer together the way a real
// query driver would, without needing an on-disk columnar file. It is
// intentionally thin: query planning and driver programs are out of
// this module's scope (spec.md §1).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chidata/lqf/block"
	"github.com/chidata/lqf/engine"
	"github.com/chidata/lqf/graph"
	"github.com/chidata/lqf/ops"
	"github.com/chidata/lqf/predicate"
	"github.com/chidata/lqf/printer"
	"github.com/chidata/lqf/rowcopy"
	"github.com/chidata/lqf/table"
)

var configPath string

func init() {
	flag.StringVar(&configPath, "config", "", "path to a YAML engine.Config; defaults are used if empty")
}

func exitf(err error) {
	log.Print(err)
	os.Exit(1)
}

func loadConfig() engine.Config {
	if configPath == "" {
		return engine.DefaultConfig()
	}
	cfg, err := engine.LoadConfig(configPath)
	if err != nil {
		exitf(fmt.Errorf("lqfcheck: %w", err))
	}
	return cfg
}

// selfCheckSource builds a tiny two-column table: (group, value), four
// rows across two groups, so the self-check graph has something to
// filter and aggregate.
func selfCheckSource() *table.MemTable {
	mt := table.NewMemTable([]uint32{1, 1}, false)
	rb := mt.Allocate(4).(*block.RowBlock)
	rows := [][2]int64{{1, 10}, {1, 20}, {2, 5}, {2, 7}}
	for i, r := range rows {
		row := rb.RowAt(uint32(i))
		row.Field(0).SetInt(r[0])
		row.Field(1).SetInt(r[1])
	}
	return mt
}

func run() error {
	cfg := loadConfig()
	if _, err := engine.Init(cfg); err != nil {
		return fmt.Errorf("lqfcheck: %w", err)
	}

	g := graph.NewGraph()
	srcH := g.Add(graph.NewTableNode(selfCheckSource()))

	filter := predicate.NewColFilter(predicate.NewSimple(1, func(f block.DataField) bool {
		return f.AsInt() > 0
	}))
	filterH := g.Add(graph.NewFilterNode(filter), srcH)

	agg := ops.NewHashAgg(ops.IntKey(0), []rowcopy.FieldKind{rowcopy.Regular}, block.Uniform(2), func() []ops.Reducer {
		return []ops.Reducer{ops.NewIntSum(1)}
	}, nil)
	aggH := g.Add(graph.NewHashAggNode(agg, []uint32{1, 1}), filterH)

	p := printer.New(os.Stdout, []printer.Column{
		{Index: 0, Kind: printer.Int},
		{Index: 1, Kind: printer.Int},
	})
	printH := g.Add(printer.NewNode(p), aggH)

	_, err := g.Execute(printH)
	return err
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		exitf(err)
	}
}
