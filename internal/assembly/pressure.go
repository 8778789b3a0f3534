// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assembly

import (
	"github.com/sergeyfarin/ressim/internal/grid"
	"github.com/sergeyfarin/ressim/internal/solver"
	"github.com/sergeyfarin/ressim/internal/wells"
)

// System is the assembled pressure-equation linear system A*p = b of
// spec §4.4.
type System struct {
	A *solver.CSR
	B []float64
}

// BuildPressureSystem assembles the implicit-pressure system for one
// candidate dt. pPrev and sw are the committed pressure and saturation
// fields from the start of this (sub-)step; wells must already have
// PI and EffectiveBHP populated for this step (spec §4.7 steps
// a-b run before assembly).
//
// A is assembled face-symmetric: both off-diagonal entries of a face use
// the same scalar (tw+to), so A stays symmetric regardless of the
// per-phase upwind choice: gravity and capillary are lagged onto b as
// explicit sources (spec §4.4, testable property 4).
func BuildPressureSystem(g *grid.Grid, faces []Face, wellList []*wells.Well, pPrev, sw []float64, dt float64) *System {
	n := len(pPrev)
	pc := make([]float64, n)
	for i := 0; i < n; i++ {
		pc[i] = g.CapillaryPressureAt(i, sw[i])
	}

	t := solver.NewTriplet(n, n*7)
	b := make([]float64, n)

	for id := 0; id < n; id++ {
		vp := g.PoreVolume(id)
		ct := g.TotalCompressibility(sw[id])
		accum := vp * ct / dt
		t.Put(id, id, accum)
		b[id] = accum * pPrev[id]
	}

	for _, f := range faces {
		tw, to, source := EvalFace(g, f, pPrev, sw, pc)
		ttot := tw + to
		t.Put(f.A, f.A, ttot)
		t.Put(f.B, f.B, ttot)
		t.Put(f.A, f.B, -ttot)
		t.Put(f.B, f.A, -ttot)
		b[f.A] -= source
		b[f.B] += source
	}

	for _, w := range wellList {
		if w.PI <= 0 {
			continue
		}
		id := g.Dims.Index(w.I, w.J, w.K)
		t.Put(id, id, w.PI)
		b[id] += w.PI * w.EffectiveBHP
	}

	return &System{A: t.ToCSR(), B: b}
}
