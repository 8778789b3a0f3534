// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/sergeyfarin/ressim/internal/assembly"
	"github.com/sergeyfarin/ressim/internal/rerr"
	"github.com/sergeyfarin/ressim/internal/solver"
	"github.com/sergeyfarin/ressim/internal/transport"
	"github.com/sergeyfarin/ressim/internal/wells"
)

// epsDt is the residual-time tolerance below which the remaining portion
// of a step is considered consumed.
const epsDt = 1e-9

// subStepShrink is the factor a sub-step is shrunk by on the first and
// subsequent retries of spec §4.6's attempt loop.
const subStepShrink = 0.5

// updateWellIndices recomputes every well's productivity index from the
// cell's current total mobility (spec §4.2, "Dynamic PI") and derives the
// effective BHP used for this (sub-)step's assembly. A well whose PI or
// effective BHP comes out non-finite is skipped (PI forced to 0) with a
// warning, per spec §7; this never aborts the step.
func (s *Simulator) updateWellIndices(p []float64) {
	g := s.Grid
	for _, w := range s.Wells {
		if w.Injector && !s.injectorEnabled {
			w.PI = 0
			continue
		}
		id := g.Dims.Index(w.I, w.J, w.K)
		c := &g.Cells[id]
		omega := wells.PeacemanPI(c.Kx, c.Ky, g.Dx, g.Dy, g.Dz, w.Rw, w.Skin, 1.0)
		totalMobility := g.MobilityWaterAt(id, c.Sw) + g.MobilityOilAt(id, c.Sw)
		pi := omega * totalMobility

		if math.IsNaN(pi) || math.IsInf(pi, 0) || pi < 0 {
			s.warnf("well (%d,%d,%d): non-finite productivity index, well skipped this step", w.I, w.J, w.K)
			w.PI = 0
			continue
		}

		bhp := w.TargetBHP
		clamped := false
		if w.Control == wells.Rate {
			bhp, clamped = wells.EffectiveBHPFromRate(pi, p[id], w.TargetRate, w.Injector, s.bhpMin, s.bhpMax)
		} else if bhp < s.bhpMin {
			bhp, clamped = s.bhpMin, true
		} else if bhp > s.bhpMax {
			bhp, clamped = s.bhpMax, true
		}

		if math.IsNaN(bhp) || math.IsInf(bhp, 0) {
			s.warnf("well (%d,%d,%d): non-finite effective BHP, well skipped this step", w.I, w.J, w.K)
			w.PI = 0
			continue
		}

		w.PI = pi
		w.EffectiveBHP = bhp
		w.RateClamped = clamped
	}
}

// subStepResult is the outcome of one candidate sub-step evaluation.
type subStepResult struct {
	p             []float64
	tr            transport.Result
	maxDp         float64
	maxRateChange float64
	converged     bool
	warning       string
}

// wellRateChangeFraction returns the largest fractional change, across
// every well, between its rate at the last committed sub-step
// (w.PrevTotalRate) and its candidate rate in tr.WellRates. A well with no
// prior commit (PrevTotalRate == 0) is excluded, since any nonzero startup
// rate would otherwise read as an infinite jump.
func wellRateChangeFraction(tr transport.Result) float64 {
	maxFrac := 0.0
	for _, wr := range tr.WellRates {
		prev := wr.Well.PrevTotalRate
		if prev == 0 {
			continue
		}
		total := math.Abs(wr.WaterResOut + wr.OilResOut)
		frac := math.Abs(total-prev) / math.Abs(prev)
		if frac > maxFrac {
			maxFrac = frac
		}
	}
	return maxFrac
}

// commitWellRates records each well's total rate from the just-committed
// sub-step, so the next candidate sub-step can be gated against it.
func commitWellRates(tr transport.Result) {
	for _, wr := range tr.WellRates {
		wr.Well.PrevTotalRate = math.Abs(wr.WaterResOut + wr.OilResOut)
	}
}

// evalSubStep assembles and solves the pressure system for a candidate dt,
// then evaluates the explicit saturation update against it. It mutates
// neither the grid nor well state (other than the cached PI/EffectiveBHP
// already set by updateWellIndices, which does not depend on dt).
func (s *Simulator) evalSubStep(pPrev, swPrev []float64, dt float64) (subStepResult, error) {
	sys := assembly.BuildPressureSystem(s.Grid, s.faces, s.Wells, pPrev, swPrev, dt)

	// Solve mutates its x0 argument in place to produce X, so a fresh
	// copy is passed rather than pPrev itself: pPrev must stay the
	// untouched committed state, both for the Δp comparison below and so
	// a shrunk retry of this sub-step restarts from the right state.
	x0 := make([]float64, len(pPrev))
	copy(x0, pPrev)
	res := solver.Solve(sys.A, sys.B, x0, s.ws)

	for _, v := range res.X {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return subStepResult{}, rerr.Newf("sim: non-finite pressure encountered, aborting step (previous state preserved)")
		}
	}

	dp := make([]float64, len(res.X))
	for i := range res.X {
		dp[i] = math.Abs(res.X[i] - pPrev[i])
	}
	maxDp := 0.0
	if len(dp) > 0 {
		maxDp = floats.Max(dp)
	}

	tr := transport.Update(s.Grid, s.faces, s.Wells, res.X, swPrev, dt)

	return subStepResult{
		p:             res.X,
		tr:            tr,
		maxDp:         maxDp,
		maxRateChange: wellRateChangeFraction(tr),
		converged:     res.Converged,
		warning:       res.Warning,
	}, nil
}

// Step advances the simulation by dtTargetDays using the adaptive
// sub-stepping driver of spec §4.7: the implicit-pressure/explicit-
// saturation (IMPES) cycle is repeated over sub-steps small enough that
// neither the pressure, the saturation, nor any well's total rate changes
// too much in one solve, shrinking the candidate dt (up to
// maxSubStepAttempts times) whenever a candidate violates the stability
// thresholds of SetStabilityParams. One rate-history entry is recorded for
// the whole call, aggregating every committed sub-step.
func (s *Simulator) Step(dtTargetDays float64) error {
	if !finite1(dtTargetDays) || dtTargetDays <= 0 {
		return rerr.Newf("sim: step size must be finite and > 0, got %g", dtTargetDays)
	}
	s.ensureFaces()
	s.ensureWorkspace()
	s.ensureBaseline()

	n := s.Grid.Dims.NumCells()
	pPrev := make([]float64, n)
	swPrev := make([]float64, n)
	for i, c := range s.Grid.Cells {
		pPrev[i] = c.Pressure
		swPrev[i] = c.Sw
	}

	var (
		totalInj, totalProdOil, totalProdLiq float64
		totalInjRes, totalProdLiqRes         float64
	)

	remaining := dtTargetDays
	dt := dtTargetDays

	for remaining > epsDt {
		if dt > remaining {
			dt = remaining
		}

		var (
			result subStepResult
			err    error
			ok     bool
		)
		for attempt := 1; attempt <= maxSubStepAttempts; attempt++ {
			s.updateWellIndices(pPrev)

			result, err = s.evalSubStep(pPrev, swPrev, dt)
			if err != nil {
				return err
			}
			if !result.converged {
				msg := result.warning
				if msg == "" {
					msg = "pressure solve did not converge"
				}
				s.warnf("sim: t=%.6g dt=%.6g: %s", s.time, dt, msg)
			}

			withinSat := result.tr.MaxDSw <= s.stab.MaxSatChange
			withinP := result.maxDp <= s.stab.MaxPressureChange
			withinRate := result.maxRateChange <= s.stab.MaxWellRateChangeFraction
			if withinSat && withinP && withinRate {
				ok = true
				break
			}
			if attempt == maxSubStepAttempts {
				s.warnf("sim: t=%.6g: sub-step attempt cap reached (maxDSw=%.4g maxDp=%.4g maxRateChange=%.4g), accepting oversized change", s.time, result.tr.MaxDSw, result.maxDp, result.maxRateChange)
				ok = true
				break
			}
			dt *= subStepShrink
		}
		if !ok {
			// unreachable: the loop above always sets ok on its last
			// attempt, kept only as a defensive guard against a future
			// refactor of the attempt loop.
			return rerr.Newf("sim: failed to find a stable sub-step")
		}

		for i := 0; i < n; i++ {
			s.Grid.Cells[i].Pressure = result.p[i]
			s.Grid.Cells[i].Sw = result.tr.Sw[i]
		}
		copy(pPrev, result.p)
		copy(swPrev, result.tr.Sw)
		commitWellRates(result.tr)

		for _, wr := range result.tr.WellRates {
			if wr.Well.Injector {
				injRes := -wr.WaterResOut // WaterResOut<0 for an injector
				totalInjRes += injRes * dt
				totalInj += injRes / s.Grid.Fluid.BW * dt
			} else {
				totalProdOil += wr.OilResOut / s.Grid.Fluid.BO * dt
				prodLiqRes := wr.WaterResOut + wr.OilResOut
				totalProdLiqRes += prodLiqRes * dt
				totalProdLiq += (wr.WaterResOut/s.Grid.Fluid.BW + wr.OilResOut/s.Grid.Fluid.BO) * dt
			}
		}

		s.time += dt
		remaining -= dt
		dt = remaining
	}

	s.cumInjectedWaterRes += totalInjRes
	s.cumProducedLiquidRes += totalProdLiqRes

	swPV, soPV := s.phaseVolumes()
	balance := (swPV + soPV) - (s.baselineSwPV + s.baselineSoPV) - s.cumInjectedWaterRes + s.cumProducedLiquidRes

	vrr := 0.0
	if totalProdLiqRes > 0 {
		vrr = totalInjRes / totalProdLiqRes
	}

	s.rateHistory = append(s.rateHistory, RateEntry{
		Time:                           s.time,
		TotalInjection:                 totalInj,
		TotalProductionOil:             totalProdOil,
		TotalProductionLiquid:          totalProdLiq,
		TotalInjectionReservoir:        totalInjRes,
		TotalProductionLiquidReservoir: totalProdLiqRes,
		VRR:                            vrr,
		MaterialBalanceErrorM3:         balance,
	})

	return nil
}

func finite1(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
