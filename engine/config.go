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
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Config is the engine-wide option set: how many workers an exec.Executor
// starts with, the default row count a table.MemTable.Allocate call
// should request when a caller doesn't have a better estimate, and the
// growth factor an output block should over-allocate by when a
// producer (HashJoin probe, HashAgg finalize) doesn't know its exact
// output cardinality up front.
type Config struct {
	Workers           int     `json:"workers"`
	DefaultBatchSize  uint32  `json:"defaultBatchSize"`
	OutputGrowthFactor float64 `json:"outputGrowthFactor"`
}

// DefaultConfig returns the conservative defaults used when no
// configuration file is supplied.
func DefaultConfig() Config {
	return Config{
		Workers:            4,
		DefaultBatchSize:   4096,
		OutputGrowthFactor: 1.5,
	}
}

// LoadConfig reads a YAML-encoded Config from path, starting from
// DefaultConfig so a partial document only overrides the fields it
// names.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("engine: LoadConfig: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("engine: LoadConfig: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("engine: LoadConfig: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects option combinations that would otherwise surface as
// confusing failures deep inside exec or block (SchemaMismatch/
// CapacityOverflow territory per spec.md §7).
func (c Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("engine: Config.Workers must be positive, got %d", c.Workers)
	}
	if c.DefaultBatchSize == 0 {
		return fmt.Errorf("engine: Config.DefaultBatchSize must be positive")
	}
	if c.OutputGrowthFactor < 1 {
		return fmt.Errorf("engine: Config.OutputGrowthFactor must be >= 1, got %g", c.OutputGrowthFactor)
	}
	return nil
}
