// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package units holds the oil-field unit-system conversion constants shared
// by the well (C2) and transmissibility (C3) models. gofem keeps this kind
// of process-wide constant next to the models that use it (e.g. Gref in
// mporous.Model); we isolate it here since two packages need the same
// value and must never drift apart.
package units

// PeacemanConst is the oil-field unit conversion constant C such that
//
//	PI  = C * kh * dz / (mu * (ln(req/rw) + skin))   [m3/day/bar]
//	T   = C * 2*Ti*Tj/(Ti+Tj) / mu                   [m3/day/bar]
//
// where Ti = k_i * area / (0.5*length) is each cell's half-transmissibility,
// with permeability in mD, lengths in m, viscosity in cP and pressure in
// bar. 8.527e-5 is correct for this unit system; the historical oilfield
// value 0.001127 is for STB/day·psi and must not be used here (see
// spec §9).
const PeacemanConst = 8.527e-5

// GravityAccel is g in m/s^2, used to build the phase potential term
// rho*g*z. z is measured in meters (positive downward, per spec §4.3).
const GravityAccel = 9.80665

// PaToBar converts a term already in Pa (rho [kg/m3] * g [m/s2] * z [m]) to
// bar, so it can be added directly to pressures expressed in bar.
const PaToBar = 1.0 / 1.0e5

// GravityPotentialBar returns rho*g*z expressed directly in bar.
func GravityPotentialBar(rhoKgM3, depthM float64) float64 {
	return rhoKgM3 * GravityAccel * depthM * PaToBar
}
