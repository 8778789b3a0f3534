// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import "github.com/sergeyfarin/ressim/internal/rerr"

// CellState is one cell's read-only state, returned by GetGridState.
type CellState struct {
	I, J, K  int
	Pressure float64
	Sw       float64
	So       float64
	Depth    float64
	RegionID int
}

// GetGridState returns a snapshot of every cell's current pressure,
// saturation and depth, indexed in the same (i,j,k) linear order as the
// grid itself.
func (s *Simulator) GetGridState() []CellState {
	d := s.Grid.Dims
	out := make([]CellState, d.NumCells())
	for k := 0; k < d.Nz; k++ {
		for j := 0; j < d.Ny; j++ {
			for i := 0; i < d.Nx; i++ {
				id := d.Index(i, j, k)
				c := s.Grid.Cells[id]
				out[id] = CellState{I: i, J: j, K: k, Pressure: c.Pressure, Sw: c.Sw, So: c.So(), Depth: c.Depth, RegionID: c.RegionID}
			}
		}
	}
	return out
}

// WellState is one well's read-only state, returned by GetWellState.
type WellState struct {
	I, J, K      int
	Injector     bool
	Control      Control
	TargetBHP    float64
	TargetRate   float64
	PI           float64
	EffectiveBHP float64
	RateClamped  bool
}

// GetWellState returns the current configuration and last-evaluated
// productivity index / effective BHP of every well, in add-order.
func (s *Simulator) GetWellState() []WellState {
	out := make([]WellState, len(s.Wells))
	for i, w := range s.Wells {
		out[i] = WellState{
			I: w.I, J: w.J, K: w.K,
			Injector:     w.Injector,
			Control:      w.Control,
			TargetBHP:    w.TargetBHP,
			TargetRate:   w.TargetRate,
			PI:           w.PI,
			EffectiveBHP: w.EffectiveBHP,
			RateClamped:  w.RateClamped,
		}
	}
	return out
}

// GetRateHistory returns every rate-history entry recorded so far, one per
// call to Step, in chronological order.
func (s *Simulator) GetRateHistory() []RateEntry {
	out := make([]RateEntry, len(s.rateHistory))
	copy(out, s.rateHistory)
	return out
}

// Snapshot is a deterministic, restorable copy of a simulator's evolving
// state, grounded on gofem's gob-encodable Solution structure. It does not
// capture static configuration (grid geometry, fluid/rock/SCAL parameters,
// well definitions), only the state Step mutates, so Restore must be
// called on a simulator configured identically to the one that produced
// the snapshot.
type Snapshot struct {
	Time         float64
	Pressure     []float64
	Sw           []float64
	WellPI       []float64
	WellBHP      []float64
	WellClamped  []bool
	WellPrevRate []float64
	CumInjected  float64
	CumProduced  float64
	RateHistory  []RateEntry
}

// Snapshot captures the simulator's current mutable state, suitable for a
// host to checkpoint before an operation it may need to roll back (spec
// §4.6/§4.7: a shrunk sub-step attempt must not have mutated committed
// state; Step already guarantees this internally via local buffers, so
// Snapshot/Restore exists for host-level checkpointing across Step calls).
func (s *Simulator) Snapshot() Snapshot {
	n := s.Grid.Dims.NumCells()
	p := make([]float64, n)
	sw := make([]float64, n)
	for i, c := range s.Grid.Cells {
		p[i], sw[i] = c.Pressure, c.Sw
	}
	pi := make([]float64, len(s.Wells))
	bhp := make([]float64, len(s.Wells))
	clamped := make([]bool, len(s.Wells))
	prevRate := make([]float64, len(s.Wells))
	for i, w := range s.Wells {
		pi[i], bhp[i], clamped[i] = w.PI, w.EffectiveBHP, w.RateClamped
		prevRate[i] = w.PrevTotalRate
	}
	hist := make([]RateEntry, len(s.rateHistory))
	copy(hist, s.rateHistory)
	return Snapshot{
		Time:         s.time,
		Pressure:     p,
		Sw:           sw,
		WellPI:       pi,
		WellBHP:      bhp,
		WellClamped:  clamped,
		WellPrevRate: prevRate,
		CumInjected:  s.cumInjectedWaterRes,
		CumProduced:  s.cumProducedLiquidRes,
		RateHistory:  hist,
	}
}

// Restore replaces the simulator's mutable state with a previously
// captured Snapshot. It returns an error if the snapshot's cell/well
// counts do not match the current configuration.
func (s *Simulator) Restore(snap Snapshot) error {
	n := s.Grid.Dims.NumCells()
	if len(snap.Pressure) != n || len(snap.Sw) != n {
		return rerr.Newf("sim: snapshot has %d cells, simulator has %d", len(snap.Pressure), n)
	}
	if len(snap.WellPI) != len(s.Wells) {
		return rerr.Newf("sim: snapshot has %d wells, simulator has %d", len(snap.WellPI), len(s.Wells))
	}
	for i := range s.Grid.Cells {
		s.Grid.Cells[i].Pressure = snap.Pressure[i]
		s.Grid.Cells[i].Sw = snap.Sw[i]
	}
	for i, w := range s.Wells {
		w.PI, w.EffectiveBHP, w.RateClamped = snap.WellPI[i], snap.WellBHP[i], snap.WellClamped[i]
		w.PrevTotalRate = snap.WellPrevRate[i]
	}
	s.time = snap.Time
	s.cumInjectedWaterRes = snap.CumInjected
	s.cumProducedLiquidRes = snap.CumProduced
	s.rateHistory = append([]RateEntry(nil), snap.RateHistory...)
	return nil
}
