// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package capillary implements the Brooks-Corey capillary pressure curve.
// It is grounded on gofem/mreten's BrooksCorey liquid retention model
// (mreten/bc.go): both are power-law curves keyed on entry pressure and a
// pore-size distribution exponent lambda. mreten solves the inverse
// problem (saturation as a function of capillary pressure, for a soil
// retention curve); a black-oil capillary pressure curve is conventionally
// expressed the other way around, Pc as a function of Sw, so this package
// keeps the same parameter set and registry shape but inverts the relation
// bc.go implements.
package capillary

import (
	"math"
	"strings"

	"github.com/sergeyfarin/ressim/internal/rerr"
)

// maxPc is the finite cap applied at and below the residual saturation
// endpoint and whenever the computed value would otherwise blow up, per
// spec §4.1 ("a finite cap ... <= 500 bar").
const maxPc = 500.0

// Model is a capillary pressure curve Pc(Sw).
type Model interface {
	Init(params Params) error
	Pc(sw float64) float64
	Params() Params
}

// Params holds the Brooks-Corey entry pressure and pore-size exponent plus
// the Corey endpoints the curve is normalized against.
type Params struct {
	Pentry, Lambda float64
	Swc, Sor       float64
	Enabled        bool
}

// Validate checks lambda > 0 whenever the curve is enabled with a positive
// entry pressure.
func (p Params) Validate() error {
	if p.Enabled && p.Pentry > 0 && p.Lambda <= 0 {
		return rerr.Newf("capillary: lambda must be > 0 when capillary pressure is enabled, got %g", p.Lambda)
	}
	return nil
}

// BrooksCorey implements the power-law Pc(Sw) curve of spec §4.1.
type BrooksCorey struct {
	p Params
}

func init() {
	allocators["bc"] = func() Model { return new(BrooksCorey) }
}

// Init stores validated parameters.
func (o *BrooksCorey) Init(params Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	o.p = params
	return nil
}

// Params returns the parameters this model was initialised with.
func (o BrooksCorey) Params() Params { return o.p }

// Pc computes the capillary pressure at the given water saturation.
//
// Disabled (Enabled==false) or Pentry==0 returns 0. Otherwise, with
// se = clamp((sw-Swc)/(1-Swc-Sor), 0, 1): se>=1 -> 0; se<=0 -> maxPc;
// else Pc = min(maxPc, Pentry * se^(-1/lambda)).
func (o BrooksCorey) Pc(sw float64) float64 {
	if !o.p.Enabled || o.p.Pentry == 0 {
		return 0
	}
	denom := 1 - o.p.Swc - o.p.Sor
	var se float64
	if denom > 0 {
		se = (sw - o.p.Swc) / denom
	}
	if se >= 1 {
		return 0
	}
	if se <= 0 {
		return maxPc
	}
	pc := o.p.Pentry * math.Pow(se, -1/o.p.Lambda)
	if pc > maxPc {
		return maxPc
	}
	return pc
}

var allocators = map[string]func() Model{}

// GetModel returns a new instance of the named capillary pressure model.
func GetModel(name string) (Model, error) {
	alloc, ok := allocators[strings.ToLower(name)]
	if !ok {
		return nil, rerr.Newf("capillary: unknown model %q", name)
	}
	return alloc(), nil
}
