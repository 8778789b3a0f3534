// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wells implements the Peaceman-model point well of spec §4.2.
// Wells reference grid cells by (i,j,k) index only, never by pointer (spec
// §9), mirroring gofem's element-to-node indirection through integer ids
// rather than shared ownership.
package wells

import (
	"math"

	"github.com/sergeyfarin/ressim/internal/rerr"
	"github.com/sergeyfarin/ressim/internal/units"
)

// Control is a well's control mode.
type Control int

const (
	BHP  Control = iota // bottom-hole-pressure controlled
	Rate                // surface-rate controlled
)

// Well is one perforation at a single (I,J,K) cell, exactly matching the
// add_well(i,j,k,...) constructor of spec §6. A multi-layer completion
// (spec §3: "wells extend across all k of a chosen (i,j)") is modeled as
// several Well values sharing the same (I,J) with distinct K, one per
// add_well call — there is no separate "well group" type, the same way
// gofem models a multi-element structure as several Elem values sharing
// boundary nodes rather than one aggregate object.
type Well struct {
	I, J, K int

	Rw       float64 // wellbore radius, m
	Skin     float64 // dimensionless skin
	Injector bool

	Control    Control
	TargetBHP  float64 // bar, used when Control == BHP
	TargetRate float64 // m3/day (surface), used when Control == Rate

	// PI caches the Peaceman productivity index, recomputed every step
	// from current total mobility (spec §4.2 "Dynamic PI").
	PI float64

	// EffectiveBHP is the BHP used for this step's assembly: the
	// well's own TargetBHP clamped to the configured BHP limits when
	// Control==BHP, or the inverted, clamped BHP when Control==Rate
	// (spec §4.2).
	EffectiveBHP float64
	// RateClamped records whether the last EffectiveBHP computation
	// hit the configured BHP limit (spec §4.2: "if the clamp is
	// active, behavior reverts to BHP control at the limit").
	RateClamped bool

	// PrevTotalRate is the well's total reservoir volumetric rate
	// (|water+oil|, m3/day) at the last committed sub-step, used by the
	// step driver to gate how fast a well's rate is allowed to swing
	// between consecutive commits (spec §6 setStabilityParams's
	// max_well_rate_change_fraction). Zero means no sub-step has been
	// committed for this well yet, so the gate is skipped once.
	PrevTotalRate float64
}

// Validate checks the construction-time constraints of spec §6
// (add_well): grid bounds, finiteness of bhp, r_w > 0, bhp in [-100,2000].
func Validate(i, j, k, nx, ny, nz int, bhp, rw float64) error {
	if i < 0 || i >= nx || j < 0 || j >= ny || k < 0 || k >= nz {
		return rerr.Newf("wells: (i=%d,j=%d,k=%d) out of bounds for grid %dx%dx%d", i, j, k, nx, ny, nz)
	}
	if math.IsNaN(bhp) || math.IsInf(bhp, 0) {
		return rerr.Newf("wells: bhp must be finite, got %g", bhp)
	}
	if bhp < -100 || bhp > 2000 {
		return rerr.Newf("wells: bhp must be in [-100,2000] bar, got %g", bhp)
	}
	if rw <= 0 {
		return rerr.Newf("wells: wellbore radius must be > 0, got %g", rw)
	}
	return nil
}

// PeacemanPI computes the Peaceman productivity index for a vertical well
// penetrating one cell (spec §4.2).
//
//	req = 0.28*sqrt(sqrt(ky/kx)*dx^2 + sqrt(kx/ky)*dy^2) / ((ky/kx)^(1/4) + (kx/ky)^(1/4))
//	PI  = C * kh * dz / (muRef * (ln(req/rw) + skin))
func PeacemanPI(kx, ky, dx, dy, dz, rw, skin, muRef float64) float64 {
	if kx <= 0 || ky <= 0 || muRef <= 0 || rw <= 0 {
		return 0
	}
	ratio := ky / kx
	req := 0.28 * math.Sqrt(math.Sqrt(ratio)*dx*dx+math.Sqrt(1/ratio)*dy*dy) /
		(math.Pow(ratio, 0.25) + math.Pow(1/ratio, 0.25))
	lnTerm := math.Log(req/rw) + skin
	if lnTerm <= 0 {
		return 0
	}
	kh := math.Sqrt(kx * ky)
	return units.PeacemanConst * kh * dz / (muRef * lnTerm)
}

// EffectiveBHPFromRate inverts q = PI*(pCell-bhp) for bhp given a target
// surface rate, then clamps to [bhpMin,bhpMax] (spec §4.2). Returns the
// effective BHP and whether the clamp was active.
//
// For a producer (injector==false), q is the target production rate
// (positive); for an injector, q is the target injection rate (positive,
// injector flows into the reservoir so bhp > pCell).
func EffectiveBHPFromRate(pi, pCell, targetRate float64, injector bool, bhpMin, bhpMax float64) (bhp float64, clamped bool) {
	if pi == 0 {
		return pCell, false
	}
	if injector {
		bhp = pCell + targetRate/pi
	} else {
		bhp = pCell - targetRate/pi
	}
	if bhp < bhpMin {
		return bhpMin, true
	}
	if bhp > bhpMax {
		return bhpMax, true
	}
	return bhp, false
}
