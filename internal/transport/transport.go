// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transport implements the explicit upwind saturation update of
// spec §4.6. It is grounded on gofem/mporous's state-update shape
// (mporous.Model.Update computes a new state from a pressure/saturation
// increment with an iteration/residual loop); here the update is fully
// explicit (IMPES), so no inner Newton loop is needed, but the same "take
// the committed state plus a delta, return the new state" contract holds.
package transport

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/sergeyfarin/ressim/internal/assembly"
	"github.com/sergeyfarin/ressim/internal/grid"
	"github.com/sergeyfarin/ressim/internal/wells"
)

// WellRate reports one well's instantaneous volumetric rates at the
// evaluated state, in reservoir m3/day. Positive Water/Oil means the
// fluid is leaving the reservoir (production); a negative value means it
// is entering (injection).
type WellRate struct {
	Well        *wells.Well
	WaterResOut float64 // >0 production, <0 injection
	OilResOut   float64 // >0 production, 0 for injectors
}

// Result holds the outcome of one explicit saturation update.
type Result struct {
	Sw        []float64 // updated, clamped water saturation
	MaxDSw    float64   // max absolute predicted |delta Sw| across all cells, pre-clamp
	WellRates []WellRate
}

// Update computes the explicit water-volume balance for one (sub-)step of
// length dt, using the newly solved pressure pNew and the saturation field
// swOld at the start of the step for upwinding (spec §4.6).
func Update(g *grid.Grid, faces []assembly.Face, wellList []*wells.Well, pNew, swOld []float64, dt float64) Result {
	n := len(swOld)
	pc := make([]float64, n)
	for i := 0; i < n; i++ {
		pc[i] = g.CapillaryPressureAt(i, swOld[i])
	}

	dVw := make([]float64, n)

	for _, f := range faces {
		qw, _ := assembly.FaceFluxes(g, f, pNew, swOld, pc)
		dVw[f.A] -= qw * dt
		dVw[f.B] += qw * dt
	}

	rates := make([]WellRate, 0, len(wellList))
	for _, w := range wellList {
		if w.PI <= 0 || math.IsNaN(w.PI) || math.IsInf(w.PI, 0) {
			continue
		}
		id := g.Dims.Index(w.I, w.J, w.K)
		if w.Injector {
			qTotal := w.PI * (w.EffectiveBHP - pNew[id]) // >0 when BHP>pCell, entering
			dVw[id] += qTotal * dt
			rates = append(rates, WellRate{Well: w, WaterResOut: -qTotal, OilResOut: 0})
		} else {
			qTotal := w.PI * (pNew[id] - w.EffectiveBHP) // >0 when pCell>BHP, leaving
			fw := g.FractionalFlowAt(id, swOld[id])
			qWaterOut := qTotal * fw
			qOilOut := qTotal * (1 - fw)
			dVw[id] -= qWaterOut * dt
			rates = append(rates, WellRate{Well: w, WaterResOut: qWaterOut, OilResOut: qOilOut})
		}
	}

	swNew := make([]float64, n)
	dSw := make([]float64, n)
	for id := 0; id < n; id++ {
		vp := g.PoreVolume(id)
		var ds float64
		if vp > 0 {
			ds = dVw[id] / vp
		}
		dSw[id] = ds
		sw := swOld[id] + ds
		rp := g.RelPermParamsAt(id)
		if sw < rp.Swc {
			sw = rp.Swc
		}
		if sw > 1-rp.Sor {
			sw = 1 - rp.Sor
		}
		swNew[id] = sw
	}

	// gonum/floats.Max needs the non-negative envelope of the predicted
	// (pre-clamp) delta to report the stability metric of spec §4.6.
	for i, d := range dSw {
		dSw[i] = math.Abs(d)
	}
	maxDSw := 0.0
	if n > 0 {
		maxDSw = floats.Max(dSw)
	}

	return Result{Sw: swNew, MaxDSw: maxDSw, WellRates: rates}
}
