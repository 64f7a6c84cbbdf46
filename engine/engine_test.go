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

package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chidata/lqf/block"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	if err := os.WriteFile(path, []byte("workers: 8\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Workers != 8 {
		t.Fatalf("Workers = %d, want 8", cfg.Workers)
	}
	if cfg.DefaultBatchSize != DefaultConfig().DefaultBatchSize {
		t.Fatalf("DefaultBatchSize = %d, want the default to survive a partial override", cfg.DefaultBatchSize)
	}
}

func TestLoadConfigRejectsInvalidWorkers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	if err := os.WriteFile(path, []byte("workers: 0\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected an error for workers: 0")
	}
}

func TestInitResetsBlockIDs(t *testing.T) {
	ex, err := Init(DefaultConfig())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer ex.Shutdown()
	if id := block.NextBlockID(); id != 1 {
		t.Fatalf("first block id after Init = %d, want 1", id)
	}
}

func TestRecoverConvertsInvariantPanic(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		Raisef(SchemaMismatch, "column %d out of range", 9)
		return nil
	}
	err := run()
	if err == nil {
		t.Fatalf("expected a recovered error")
	}
	var inv Invariant
	if !errors.As(err, &inv) {
		t.Fatalf("err is not an Invariant: %v", err)
	}
	if inv.Kind != SchemaMismatch {
		t.Fatalf("Kind = %v, want SchemaMismatch", inv.Kind)
	}
}

func TestRecoverRepanicsOnOtherValues(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected the non-Invariant panic to propagate")
		}
	}()
	run := func() (err error) {
		defer Recover(&err)
		panic("not an invariant")
	}
	_ = run()
}
