// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import "github.com/sergeyfarin/ressim/internal/rerr"

// SetCellDimensions sets the uniform cell spacing dx,dy,dz (m).
func (s *Simulator) SetCellDimensions(dx, dy, dz float64) error {
	return s.Grid.SetCellDimensions(dx, dy, dz)
}

// SetFluidProperties sets oil and water viscosities (cP).
func (s *Simulator) SetFluidProperties(muO, muW float64) error {
	return s.Grid.SetFluidProperties(muO, muW)
}

// SetFluidCompressibilities sets oil and water compressibilities (1/bar).
func (s *Simulator) SetFluidCompressibilities(co, cw float64) error {
	return s.Grid.SetFluidCompressibilities(co, cw)
}

// SetFluidDensities sets oil and water densities (kg/m3).
func (s *Simulator) SetFluidDensities(rhoO, rhoW float64) error {
	return s.Grid.SetFluidDensities(rhoO, rhoW)
}

// SetRockProperties sets rock compressibility, gravity datum, and formation
// volume factors.
func (s *Simulator) SetRockProperties(cr, depthRef, bo, bw float64) error {
	return s.Grid.SetRockProperties(cr, depthRef, bo, bw)
}

// SetRelPermProps sets the Corey endpoints and exponents.
func (s *Simulator) SetRelPermProps(swc, sor, nw, no float64) error {
	return s.Grid.SetRelPermProps(swc, sor, nw, no)
}

// SetCapillaryParams sets the Brooks-Corey entry pressure and pore-size
// exponent.
func (s *Simulator) SetCapillaryParams(pentry, lambda float64) error {
	return s.Grid.SetCapillaryParams(pentry, lambda)
}

// SetGravityEnabled toggles the gravity term in phase potentials.
func (s *Simulator) SetGravityEnabled(enabled bool) {
	s.Grid.SetGravityEnabled(enabled)
}

// SetInitialPressure sets a uniform initial pressure (bar).
func (s *Simulator) SetInitialPressure(p float64) error {
	return s.Grid.SetInitialPressure(p)
}

// SetInitialSaturation sets a uniform initial water saturation.
func (s *Simulator) SetInitialSaturation(sw float64) error {
	return s.Grid.SetInitialSaturation(sw)
}

// SetInitialSaturationPerLayer sets the initial water saturation one value
// per k-layer.
func (s *Simulator) SetInitialSaturationPerLayer(swPerLayer []float64) error {
	return s.Grid.SetInitialSaturationPerLayer(swPerLayer)
}

// SetPermeabilityPerLayer sets kx, ky, kz one value per k-layer.
func (s *Simulator) SetPermeabilityPerLayer(kx, ky, kz []float64) error {
	return s.Grid.SetPermeabilityPerLayer(kx, ky, kz)
}

// SetPermeabilityRandom fills kx=ky=kz from a non-deterministic uniform
// draw in [min,max].
func (s *Simulator) SetPermeabilityRandom(min, max float64) error {
	return s.Grid.SetPermeabilityRandom(min, max)
}

// SetPermeabilityRandomSeeded is the deterministic counterpart of
// SetPermeabilityRandom.
func (s *Simulator) SetPermeabilityRandomSeeded(min, max float64, seed uint64) error {
	return s.Grid.SetPermeabilityRandomSeeded(min, max, seed)
}

// SetStabilityParams configures the adaptive sub-stepping thresholds of
// spec §4.6. maxSatChange and maxPressureChange must be > 0;
// maxWellRateChangeFraction must be in (0,1].
func (s *Simulator) SetStabilityParams(maxSatChange, maxPressureChange, maxWellRateChangeFraction float64) error {
	if maxSatChange <= 0 || maxPressureChange <= 0 {
		return rerr.Newf("sim: stability thresholds must be > 0, got maxSatChange=%g maxPressureChange=%g", maxSatChange, maxPressureChange)
	}
	if maxWellRateChangeFraction <= 0 || maxWellRateChangeFraction > 1 {
		return rerr.Newf("sim: maxWellRateChangeFraction must be in (0,1], got %g", maxWellRateChangeFraction)
	}
	s.stab = StabilityParams{
		MaxSatChange:              maxSatChange,
		MaxPressureChange:         maxPressureChange,
		MaxWellRateChangeFraction: maxWellRateChangeFraction,
	}
	return nil
}

// SetWellBhpLimits sets the [bhpMin,bhpMax] clamp range used to invert a
// target rate into an effective BHP (spec §4.2).
func (s *Simulator) SetWellBhpLimits(bhpMin, bhpMax float64) error {
	if bhpMin >= bhpMax {
		return rerr.Newf("sim: bhpMin must be < bhpMax, got [%g,%g]", bhpMin, bhpMax)
	}
	s.bhpMin, s.bhpMax = bhpMin, bhpMax
	return nil
}

// SetWellControlModes sets the control mode given to every injector and
// producer that AddWell creates after this call; wells already added keep
// their own Control (per-well overrides are set on the Well values
// returned by AddWell).
func (s *Simulator) SetWellControlModes(injectorControl, producerControl Control) {
	s.injectorControl = injectorControl
	s.producerControl = producerControl
}

// SetTargetWellRates sets the target surface rates (m3/day) given to every
// injector/producer that AddWell creates after this call; wells already
// added keep their own TargetRate.
func (s *Simulator) SetTargetWellRates(targetInjRate, targetProdRate float64) error {
	if targetInjRate < 0 || targetProdRate < 0 {
		return rerr.Newf("sim: target well rates must be >= 0, got inj=%g prod=%g", targetInjRate, targetProdRate)
	}
	s.targetInjRate, s.targetProdRate = targetInjRate, targetProdRate
	return nil
}

// SetInjectorEnabled toggles whether injectors are allowed to flow; a
// disabled injector is treated as shut-in (spec §6).
func (s *Simulator) SetInjectorEnabled(enabled bool) {
	s.injectorEnabled = enabled
}
