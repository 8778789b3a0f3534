// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sim implements the step driver (C7) and is the public external
// interface of spec §6: a stateful simulator object owning the grid, the
// wells, and the PCG workspace for its entire lifetime (spec §9
// "Ownership / cyclic references"). It plays the role gofem's fem.Domain
// and fem.Run play together: Domain owns Kb/Sol/LinSol across the run,
// Run drives the outer time loop; here both responsibilities live on one
// type because there is exactly one domain (no MPI partitioning, an
// explicit Non-goal).
package sim

import (
	"log"

	"github.com/sergeyfarin/ressim/internal/assembly"
	"github.com/sergeyfarin/ressim/internal/grid"
	"github.com/sergeyfarin/ressim/internal/rerr"
	"github.com/sergeyfarin/ressim/internal/solver"
	"github.com/sergeyfarin/ressim/internal/wells"
)

// maxWarnings bounds the accumulated warning ring buffer (spec §7: warnings
// "accumulate on the simulator"); unbounded growth over a long benchmark
// run would otherwise turn a diagnostic into a memory leak.
const maxWarnings = 256

// maxSubStepAttempts is the attempt cap of spec §4.6 ("up to an attempt
// cap (e.g., 10)").
const maxSubStepAttempts = 10

// Control re-exports wells.Control so callers need only import the sim
// package to configure well control modes.
type Control = wells.Control

const (
	BHP  = wells.BHP
	Rate = wells.Rate
)

// StabilityParams holds the adaptive sub-stepping knobs of spec §4.6,
// §6 (setStabilityParams).
type StabilityParams struct {
	MaxSatChange              float64
	MaxPressureChange         float64
	MaxWellRateChangeFraction float64
}

// defaultStability matches the default called out in spec §4.6.
var defaultStability = StabilityParams{
	MaxSatChange:              0.1,
	MaxPressureChange:         50,
	MaxWellRateChangeFraction: 0.5,
}

// RateEntry is one entry of the rate history, matching the schema of
// spec §6 plus the VRR field named in the readout bullet list.
type RateEntry struct {
	Time                           float64
	TotalInjection                 float64
	TotalProductionOil             float64
	TotalProductionLiquid          float64
	TotalInjectionReservoir        float64
	TotalProductionLiquidReservoir float64
	VRR                            float64
	MaterialBalanceErrorM3         float64
}

// Simulator is the stateful core object of spec §6. It exclusively owns
// its grid, well list and solver workspace (spec §9); callers must not
// alias internal state.
type Simulator struct {
	Grid  *grid.Grid
	Wells []*wells.Well

	faces      []assembly.Face
	facesReady bool

	stab StabilityParams

	bhpMin, bhpMax                    float64
	injectorControl, producerControl wells.Control
	targetInjRate, targetProdRate    float64
	injectorEnabled                  bool

	time float64
	ws   *solver.Workspace

	rateHistory []RateEntry
	warnings    []string

	cumInjectedWaterRes  float64
	cumProducedLiquidRes float64
	baselineSwPV         float64
	baselineSoPV         float64
	baselineSet          bool
}

// New validates nx,ny,nz and constructs an empty simulator, per spec §6
// "new(nx, ny, nz) — validates nx,ny,nz >= 1".
func New(nx, ny, nz int) (*Simulator, error) {
	g, err := grid.New(nx, ny, nz)
	if err != nil {
		return nil, err
	}
	s := &Simulator{
		Grid:             g,
		stab:             defaultStability,
		bhpMin:           -100,
		bhpMax:           2000,
		injectorControl:  wells.BHP,
		producerControl:  wells.BHP,
		injectorEnabled:  true,
	}
	return s, nil
}

// warnf records a non-fatal warning, per spec §7: "numerical warnings
// accumulate on the simulator and are read via the warning accessor; no
// exceptions cross the core boundary." Mirrors fem.Stop's "message then
// continue" shape, without the MPI all-reduce (Non-goal: parallel
// execution).
func (s *Simulator) warnf(format string, args ...interface{}) {
	msg := rerr.Newf(format, args...).Error()
	log.Printf("ressim: warning: %s", msg)
	s.warnings = append(s.warnings, msg)
	if len(s.warnings) > maxWarnings {
		s.warnings = s.warnings[len(s.warnings)-maxWarnings:]
	}
}

// GetLastSolverWarning returns the most recent warning, or "" if none has
// been raised.
func (s *Simulator) GetLastSolverWarning() string {
	if len(s.warnings) == 0 {
		return ""
	}
	return s.warnings[len(s.warnings)-1]
}

// GetWarnings returns every warning accumulated so far (bounded by
// maxWarnings), oldest first.
func (s *Simulator) GetWarnings() []string {
	out := make([]string, len(s.warnings))
	copy(out, s.warnings)
	return out
}

// GetTime returns the cumulative simulated time, in days.
func (s *Simulator) GetTime() float64 { return s.time }

// GetDimensions returns the grid dimensions.
func (s *Simulator) GetDimensions() grid.Dims { return s.Grid.Dims }

func (s *Simulator) ensureFaces() {
	if !s.facesReady {
		s.faces = assembly.BuildFaces(s.Grid)
		s.facesReady = true
	}
}

func (s *Simulator) ensureWorkspace() {
	n := s.Grid.Dims.NumCells()
	if s.ws == nil {
		s.ws = solver.NewWorkspace(n)
	}
}

func (s *Simulator) ensureBaseline() {
	if s.baselineSet {
		return
	}
	s.baselineSwPV, s.baselineSoPV = s.phaseVolumes()
	s.baselineSet = true
}

// phaseVolumes returns Sum(Sw*Vp), Sum(So*Vp) over all cells.
func (s *Simulator) phaseVolumes() (swPV, soPV float64) {
	for id, c := range s.Grid.Cells {
		vp := s.Grid.PoreVolume(id)
		swPV += c.Sw * vp
		soPV += c.So() * vp
	}
	return
}
