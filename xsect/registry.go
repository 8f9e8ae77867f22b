// Copyright (C) 2024 the gammatrace authors.
// This file is part of gammatrace.
//
// gammatrace is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// gammatrace is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with gammatrace.  If not, see <http://www.gnu.org/licenses/>.

package xsect

import (
	"fmt"
	"sync"

	"github.com/gammatrace/transport/atomic"
	"github.com/gammatrace/transport/gammaerr"
)

// MaterialRecord is a material definition plus its compiled cross-section
// tables, one per process. A record with Compiled == false has Tables ==
// nil; no other package may transport through a material until it has
// been compiled.
type MaterialRecord struct {
	Definition atomic.MaterialDefinition
	Compiled   bool
	Tables     map[Process]*Table
}

// Total returns the summed total cross section (cm^2/g) across every
// compiled process, the quantity that sets the mean free path for the
// next-interaction-length draw.
func (r *MaterialRecord) Total(E float64) float64 {
	var sum float64
	for _, t := range r.Tables {
		sum += t.Evaluate(E)
	}
	return sum
}

// Registry is the mapping from material name to MaterialRecord.
// Registration and compilation are separate, explicit steps: Register
// stages a definition, Compile builds its tables.
// Compile is idempotent and safe to call from multiple goroutines, but
// callers sharing a Registry across concurrent transport batches must
// finish all Compile/Recompile calls before the first Table lookup used
// by a transport step: compiled tables are immutable, so concurrent
// reads are safe once compilation itself has quiesced.
type Registry struct {
	mu      sync.RWMutex
	records map[string]*MaterialRecord
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[string]*MaterialRecord)}
}

// Register stages a material definition under its own name, uncompiled.
// Registering a name a second time replaces the prior definition and
// clears any compiled tables for that name.
func (reg *Registry) Register(def atomic.MaterialDefinition) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.records[def.Name] = &MaterialRecord{Definition: def}
}

// Compile builds the cross-section tables for the named material across
// every process (Photoelectric, Compton, Rayleigh). Compile is a no-op
// if the material is already compiled; use Recompile to force a rebuild.
func (reg *Registry) Compile(name string) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	rec, ok := reg.records[name]
	if !ok {
		return fmt.Errorf("xsect: material %q not registered: %w", name, gammaerr.ErrBadComposition)
	}
	if rec.Compiled {
		return nil
	}
	compileRecordLocked(rec)
	return nil
}

// Recompile forces a rebuild of the named material's tables even if it
// was already compiled, for callers that mutate a definition's backing
// data out of band (e.g. swapping in a refined physics fit).
func (reg *Registry) Recompile(name string) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	rec, ok := reg.records[name]
	if !ok {
		return fmt.Errorf("xsect: material %q not registered: %w", name, gammaerr.ErrBadComposition)
	}
	compileRecordLocked(rec)
	return nil
}

// CompileAll compiles every registered, not-yet-compiled material.
func (reg *Registry) CompileAll() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	for _, rec := range reg.records {
		if !rec.Compiled {
			compileRecordLocked(rec)
		}
	}
}

func compileRecordLocked(rec *MaterialRecord) {
	moles := make(map[int]float64, len(rec.Definition.Elements()))
	for _, z := range rec.Definition.Elements() {
		moles[z] = rec.Definition.MoleFraction(z)
	}
	tables := make(map[Process]*Table, numProcesses)
	for _, p := range []Process{Photoelectric, Compton, Rayleigh} {
		tables[p] = buildTable(p, moles)
	}
	rec.Tables = tables
	rec.Compiled = true
}

// Get returns the compiled record for name, or ok=false if the name was
// never registered. A registered-but-not-yet-compiled record is still
// returned, with Compiled == false, so callers can distinguish "unknown
// material" from "known but not compiled".
func (reg *Registry) Get(name string) (*MaterialRecord, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	rec, ok := reg.records[name]
	return rec, ok
}

// Names returns the registered material names in no particular order.
func (reg *Registry) Names() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	names := make([]string, 0, len(reg.records))
	for name := range reg.records {
		names = append(names, name)
	}
	return names
}
