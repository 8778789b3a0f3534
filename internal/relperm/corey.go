// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package relperm implements Corey-type relative permeability models,
// following the same Model-interface-plus-factory shape as gofem's
// mconduct package (liquid/gas conductivity in porous media): a relative
// permeability curve is, mathematically, exactly the conductivity model
// mconduct already abstracts, so the registry pattern transfers directly.
package relperm

import (
	"math"
	"strings"

	"github.com/sergeyfarin/ressim/internal/rerr"
)

// Model is a two-phase relative permeability curve.
type Model interface {
	Init(params Params) error
	EffectiveSw(sw float64) float64
	Krw(sw float64) float64
	Kro(sw float64) float64
	Params() Params
}

// Params holds the Corey endpoints and exponents (spec §4.1).
type Params struct {
	Swc, Sor float64 // connate water / residual oil saturations
	Nw, No   float64 // Corey exponents
}

// Validate checks the endpoint constraints of spec §6
// (setRelPermProps: endpoints in [0,1), Swc + Sor < 1).
func (p Params) Validate() error {
	if p.Swc < 0 || p.Swc >= 1 || p.Sor < 0 || p.Sor >= 1 {
		return rerr.Newf("relperm: Swc and Sor must be in [0,1), got Swc=%g Sor=%g", p.Swc, p.Sor)
	}
	if p.Swc+p.Sor >= 1 {
		return rerr.Newf("relperm: Swc + Sor must be < 1, got %g", p.Swc+p.Sor)
	}
	if p.Nw <= 0 || p.No <= 0 {
		return rerr.Newf("relperm: Corey exponents must be > 0, got Nw=%g No=%g", p.Nw, p.No)
	}
	return nil
}

// Corey implements the classic power-law Corey relative permeability model.
type Corey struct {
	p Params
}

func init() {
	allocators["corey"] = func() Model { return new(Corey) }
}

// Init stores validated parameters.
func (o *Corey) Init(params Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	o.p = params
	return nil
}

// Params returns the parameters this model was initialised with.
func (o Corey) Params() Params { return o.p }

// EffectiveSw computes the normalized water saturation, clamped to [0,1].
//
//	se = clamp((sw - Swc) / (1 - Swc - Sor), 0, 1)
func (o Corey) EffectiveSw(sw float64) float64 {
	denom := 1 - o.p.Swc - o.p.Sor
	if denom <= 0 {
		return 0
	}
	se := (sw - o.p.Swc) / denom
	if se < 0 {
		return 0
	}
	if se > 1 {
		return 1
	}
	return se
}

// Krw returns the water relative permeability, se^Nw.
func (o Corey) Krw(sw float64) float64 {
	return math.Pow(o.EffectiveSw(sw), o.p.Nw)
}

// Kro returns the oil relative permeability, (1-se)^No.
func (o Corey) Kro(sw float64) float64 {
	return math.Pow(1-o.EffectiveSw(sw), o.p.No)
}

// allocators holds all available models, keyed by name. Only "corey" is
// registered today; the registry exists so a rock-fluid region (see
// SPEC_FULL.md) can later select among curve families the same way
// mconduct.GetModel selects among conductivity models.
var allocators = map[string]func() Model{}

// GetModel returns a new instance of the named relative permeability
// model, or an error if the name is not registered.
func GetModel(name string) (Model, error) {
	alloc, ok := allocators[strings.ToLower(name)]
	if !ok {
		return nil, rerr.Newf("relperm: unknown model %q", name)
	}
	return alloc(), nil
}
