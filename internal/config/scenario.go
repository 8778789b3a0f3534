// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads a pre-run scenario description from disk and
// applies it to a fresh sim.Simulator. It plays the role gofem's inp
// package plays for a FEM analysis (inp.ReadSim unmarshals a simulation
// file into inp.Data before the solver ever runs): one struct captures
// everything needed to build a runnable model, decoded from either JSON or
// YAML depending on the file extension.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sergeyfarin/ressim/internal/rerr"
	"github.com/sergeyfarin/ressim/internal/sim"
)

// Dims is the grid size, mirrored from sim.New's arguments.
type Dims struct {
	Nx int `json:"nx" yaml:"nx"`
	Ny int `json:"ny" yaml:"ny"`
	Nz int `json:"nz" yaml:"nz"`
}

// Fluid mirrors sim.Simulator's fluid setters.
type Fluid struct {
	MuO  float64 `json:"mu_o" yaml:"mu_o"`
	MuW  float64 `json:"mu_w" yaml:"mu_w"`
	CO   float64 `json:"c_o" yaml:"c_o"`
	CW   float64 `json:"c_w" yaml:"c_w"`
	RhoO float64 `json:"rho_o" yaml:"rho_o"`
	RhoW float64 `json:"rho_w" yaml:"rho_w"`
	BO   float64 `json:"bo" yaml:"bo"`
	BW   float64 `json:"bw" yaml:"bw"`
}

// Rock mirrors sim.Simulator.SetRockProperties.
type Rock struct {
	Cr       float64 `json:"cr" yaml:"cr"`
	DepthRef float64 `json:"depth_ref" yaml:"depth_ref"`
}

// RelPerm mirrors sim.Simulator.SetRelPermProps.
type RelPerm struct {
	Swc float64 `json:"swc" yaml:"swc"`
	Sor float64 `json:"sor" yaml:"sor"`
	Nw  float64 `json:"nw" yaml:"nw"`
	No  float64 `json:"no" yaml:"no"`
}

// Capillary mirrors sim.Simulator.SetCapillaryParams.
type Capillary struct {
	Pentry float64 `json:"pentry" yaml:"pentry"`
	Lambda float64 `json:"lambda" yaml:"lambda"`
}

// Well mirrors sim.Simulator.AddWell.
type Well struct {
	I        int     `json:"i" yaml:"i"`
	J        int     `json:"j" yaml:"j"`
	K        int     `json:"k" yaml:"k"`
	BHP      float64 `json:"bhp" yaml:"bhp"`
	Rw       float64 `json:"r_w" yaml:"r_w"`
	Skin     float64 `json:"skin" yaml:"skin"`
	Injector bool    `json:"injector" yaml:"injector"`
}

// Scenario is the full on-disk description of one simulation run.
type Scenario struct {
	Dims Dims `json:"dims" yaml:"dims"`

	Dx float64 `json:"dx" yaml:"dx"`
	Dy float64 `json:"dy" yaml:"dy"`
	Dz float64 `json:"dz" yaml:"dz"`

	Fluid     Fluid     `json:"fluid" yaml:"fluid"`
	Rock      Rock      `json:"rock" yaml:"rock"`
	RelPerm   RelPerm   `json:"relperm" yaml:"relperm"`
	Capillary Capillary `json:"capillary" yaml:"capillary"`

	GravityEnabled bool `json:"gravity_enabled" yaml:"gravity_enabled"`

	InitialPressure   float64   `json:"initial_pressure" yaml:"initial_pressure"`
	InitialSaturation float64   `json:"initial_saturation" yaml:"initial_saturation"`
	PermeabilityMD    float64   `json:"permeability_md" yaml:"permeability_md"`
	PermPerLayerKx    []float64 `json:"perm_per_layer_kx" yaml:"perm_per_layer_kx"`
	PermPerLayerKy    []float64 `json:"perm_per_layer_ky" yaml:"perm_per_layer_ky"`
	PermPerLayerKz    []float64 `json:"perm_per_layer_kz" yaml:"perm_per_layer_kz"`

	MaxSatChange              float64 `json:"max_sat_change" yaml:"max_sat_change"`
	MaxPressureChange         float64 `json:"max_pressure_change" yaml:"max_pressure_change"`
	MaxWellRateChangeFraction float64 `json:"max_well_rate_change_fraction" yaml:"max_well_rate_change_fraction"`

	BhpMin float64 `json:"bhp_min" yaml:"bhp_min"`
	BhpMax float64 `json:"bhp_max" yaml:"bhp_max"`

	Wells []Well `json:"wells" yaml:"wells"`

	StepDays   float64 `json:"step_days" yaml:"step_days"`
	NumSteps   int     `json:"num_steps" yaml:"num_steps"`
}

// Load reads and decodes a scenario file, choosing JSON or YAML by
// extension (.json vs .yml/.yaml).
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rerr.Wrap(err, "config: reading %s", path)
	}
	var sc Scenario
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &sc); err != nil {
			return nil, rerr.Wrap(err, "config: decoding JSON scenario %s", path)
		}
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &sc); err != nil {
			return nil, rerr.Wrap(err, "config: decoding YAML scenario %s", path)
		}
	default:
		return nil, rerr.Newf("config: unsupported scenario file extension %q", ext)
	}
	return &sc, nil
}

// Build constructs and configures a sim.Simulator from the scenario,
// applying every setter the scenario specifies, in the order a hand-built
// scenario naturally would: dimensions first, then fluid/rock/SCAL
// parameters, then permeability and initial state, then wells.
func (sc *Scenario) Build() (*sim.Simulator, error) {
	s, err := sim.New(sc.Dims.Nx, sc.Dims.Ny, sc.Dims.Nz)
	if err != nil {
		return nil, err
	}
	if err := s.SetCellDimensions(sc.Dx, sc.Dy, sc.Dz); err != nil {
		return nil, err
	}
	if err := s.SetFluidProperties(sc.Fluid.MuO, sc.Fluid.MuW); err != nil {
		return nil, err
	}
	if err := s.SetFluidCompressibilities(sc.Fluid.CO, sc.Fluid.CW); err != nil {
		return nil, err
	}
	if err := s.SetFluidDensities(sc.Fluid.RhoO, sc.Fluid.RhoW); err != nil {
		return nil, err
	}
	if err := s.SetRockProperties(sc.Rock.Cr, sc.Rock.DepthRef, sc.Fluid.BO, sc.Fluid.BW); err != nil {
		return nil, err
	}
	if err := s.SetRelPermProps(sc.RelPerm.Swc, sc.RelPerm.Sor, sc.RelPerm.Nw, sc.RelPerm.No); err != nil {
		return nil, err
	}
	if err := s.SetCapillaryParams(sc.Capillary.Pentry, sc.Capillary.Lambda); err != nil {
		return nil, err
	}
	s.SetGravityEnabled(sc.GravityEnabled)

	if len(sc.PermPerLayerKx) > 0 {
		if err := s.SetPermeabilityPerLayer(sc.PermPerLayerKx, sc.PermPerLayerKy, sc.PermPerLayerKz); err != nil {
			return nil, err
		}
	} else if sc.PermeabilityMD > 0 {
		nz := sc.Dims.Nz
		kx := make([]float64, nz)
		for i := range kx {
			kx[i] = sc.PermeabilityMD
		}
		if err := s.SetPermeabilityPerLayer(kx, kx, kx); err != nil {
			return nil, err
		}
	}

	if err := s.SetInitialPressure(sc.InitialPressure); err != nil {
		return nil, err
	}
	if err := s.SetInitialSaturation(sc.InitialSaturation); err != nil {
		return nil, err
	}

	if sc.MaxSatChange > 0 {
		mwc := sc.MaxWellRateChangeFraction
		if mwc == 0 {
			mwc = 1
		}
		if err := s.SetStabilityParams(sc.MaxSatChange, sc.MaxPressureChange, mwc); err != nil {
			return nil, err
		}
	}
	if sc.BhpMin != 0 || sc.BhpMax != 0 {
		if err := s.SetWellBhpLimits(sc.BhpMin, sc.BhpMax); err != nil {
			return nil, err
		}
	}

	for _, w := range sc.Wells {
		if _, err := s.AddWell(w.I, w.J, w.K, w.BHP, w.Rw, w.Skin, w.Injector); err != nil {
			return nil, err
		}
	}

	return s, nil
}
