// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"github.com/sergeyfarin/ressim/internal/capillary"
	"github.com/sergeyfarin/ressim/internal/relperm"
	"github.com/sergeyfarin/ressim/internal/rerr"
)

// Region is a named SCAL rock-fluid region: an alternate {relperm,
// capillary} model pair selectable per cell, generalizing gofem's
// material-database (inp.MatDb) from "one model per material tag" to "one
// model per rock region tag". PVT (fluid) properties stay process-wide;
// only the saturation-dependent curves vary by region.
type Region struct {
	RelPerm   relperm.Model
	Capillary capillary.Model
}

// SetRegion registers (or replaces) region id with the given relperm and
// capillary model names and parameters. Region 0 always exists implicitly
// as g.RelPerm/g.Capillary and cannot be overridden here; use
// SetRelPermProps/SetCapillaryParams for it instead.
func (g *Grid) SetRegion(id int, relPermName string, relParams relperm.Params, capName string, capParams capillary.Params) error {
	if id == 0 {
		return rerr.Newf("grid: region 0 is the global default, configure it via SetRelPermProps/SetCapillaryParams")
	}
	if err := relParams.Validate(); err != nil {
		return err
	}
	if err := capParams.Validate(); err != nil {
		return err
	}
	rp, err := relperm.GetModel(relPermName)
	if err != nil {
		return err
	}
	if err := rp.Init(relParams); err != nil {
		return err
	}
	cp, err := capillary.GetModel(capName)
	if err != nil {
		return err
	}
	if err := cp.Init(capParams); err != nil {
		return err
	}
	if g.Regions == nil {
		g.Regions = make(map[int]*Region)
	}
	g.Regions[id] = &Region{RelPerm: rp, Capillary: cp}
	return nil
}

// SetCellRegionPerLayer assigns a region id one value per k-layer. Every
// referenced non-zero id must already be registered via SetRegion.
func (g *Grid) SetCellRegionPerLayer(regionPerLayer []int) error {
	if len(regionPerLayer) != g.Dims.Nz {
		return rerr.Newf("grid: expected %d region values (one per layer), got %d", g.Dims.Nz, len(regionPerLayer))
	}
	for k, id := range regionPerLayer {
		if id != 0 {
			if _, ok := g.Regions[id]; !ok {
				return rerr.Newf("grid: region %d at layer %d was never registered via SetRegion", id, k)
			}
		}
	}
	for k := 0; k < g.Dims.Nz; k++ {
		for j := 0; j < g.Dims.Ny; j++ {
			for i := 0; i < g.Dims.Nx; i++ {
				g.Cells[g.Dims.Index(i, j, k)].RegionID = regionPerLayer[k]
			}
		}
	}
	return nil
}

// modelsFor returns the relperm/capillary model pair effective at cell id:
// its registered region, or the global default when the cell's RegionID is
// 0 or unregistered.
func (g *Grid) modelsFor(id int) (relperm.Model, capillary.Model) {
	rid := g.Cells[id].RegionID
	if rid != 0 {
		if r, ok := g.Regions[rid]; ok {
			return r.RelPerm, r.Capillary
		}
	}
	return g.RelPerm, g.Capillary
}

// KrwAt returns water relative permeability at cell id's saturation-
// dependent region.
func (g *Grid) KrwAt(id int, sw float64) float64 {
	rp, _ := g.modelsFor(id)
	return rp.Krw(sw)
}

// KroAt returns oil relative permeability at cell id's region.
func (g *Grid) KroAt(id int, sw float64) float64 {
	rp, _ := g.modelsFor(id)
	return rp.Kro(sw)
}

// MobilityWaterAt returns lambda_w at cell id's region.
func (g *Grid) MobilityWaterAt(id int, sw float64) float64 {
	return g.KrwAt(id, sw) / g.Fluid.MuW
}

// MobilityOilAt returns lambda_o at cell id's region.
func (g *Grid) MobilityOilAt(id int, sw float64) float64 {
	return g.KroAt(id, sw) / g.Fluid.MuO
}

// FractionalFlowAt returns f_w at cell id's region.
func (g *Grid) FractionalFlowAt(id int, sw float64) float64 {
	lw := g.MobilityWaterAt(id, sw)
	lt := lw + g.MobilityOilAt(id, sw)
	if lt == 0 {
		return 0
	}
	return lw / lt
}

// CapillaryPressureAt returns Pc(Sw) at cell id's region.
func (g *Grid) CapillaryPressureAt(id int, sw float64) float64 {
	_, cp := g.modelsFor(id)
	return cp.Pc(sw)
}

// RelPermParamsAt returns the Corey endpoint parameters effective at cell
// id, used by saturation transport to clamp Sw within [Swc, 1-Sor] of the
// cell's own region.
func (g *Grid) RelPermParamsAt(id int) relperm.Params {
	rp, _ := g.modelsFor(id)
	return rp.Params()
}
