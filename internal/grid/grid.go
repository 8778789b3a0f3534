// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"math"

	"github.com/sergeyfarin/ressim/internal/capillary"
	"github.com/sergeyfarin/ressim/internal/relperm"
	"github.com/sergeyfarin/ressim/internal/rerr"
)

// Grid owns the structured lattice, the per-cell state, and the
// process-wide fluid/rock/SCAL parameters. It exposes only pure queries on
// a cell plus the configuration setters of spec §6; it never touches
// wells, transmissibility or the pressure system.
type Grid struct {
	Dims           Dims
	Dx, Dy, Dz     float64 // cell spacings, m
	Cells          []Cell

	Fluid FluidProps
	Rock  RockProps

	RelPerm   relperm.Model
	Capillary capillary.Model

	// Regions holds non-default SCAL rock-fluid regions keyed by
	// RegionID, set via SetRegion; region 0 is always g.RelPerm/g.Capillary.
	Regions map[int]*Region

	GravityEnabled bool
}

// New validates nx,ny,nz and allocates the cell array.
func New(nx, ny, nz int) (*Grid, error) {
	if err := ValidateDims(nx, ny, nz); err != nil {
		return nil, err
	}
	d := Dims{Nx: nx, Ny: ny, Nz: nz}
	g := &Grid{
		Dims:  d,
		Cells: make([]Cell, d.NumCells()),
	}
	rp, _ := relperm.GetModel("corey")
	cp, _ := capillary.GetModel("bc")
	g.RelPerm = rp
	g.Capillary = cp
	g.ensureDefaultPorosity()
	return g, nil
}

// SetCellDimensions sets dx, dy, dz; each must be > 0.
func (g *Grid) SetCellDimensions(dx, dy, dz float64) error {
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return rerr.Newf("grid: cell dimensions must be > 0, got dx=%g dy=%g dz=%g", dx, dy, dz)
	}
	g.Dx, g.Dy, g.Dz = dx, dy, dz
	return nil
}

// SetFluidProperties sets oil and water viscosities (cP).
func (g *Grid) SetFluidProperties(muO, muW float64) error {
	if !finite(muO, muW) || muO <= 0 || muW <= 0 {
		return rerr.Newf("grid: viscosities must be finite and > 0, got muO=%g muW=%g", muO, muW)
	}
	g.Fluid.MuO, g.Fluid.MuW = muO, muW
	return nil
}

// SetFluidCompressibilities sets oil and water compressibilities (1/bar).
func (g *Grid) SetFluidCompressibilities(co, cw float64) error {
	if !finite(co, cw) || co < 0 || cw < 0 {
		return rerr.Newf("grid: compressibilities must be finite and >= 0, got co=%g cw=%g", co, cw)
	}
	g.Fluid.CO, g.Fluid.CW = co, cw
	return nil
}

// SetFluidDensities sets oil and water densities (kg/m3).
func (g *Grid) SetFluidDensities(rhoO, rhoW float64) error {
	if !finite(rhoO, rhoW) || rhoO <= 0 || rhoW <= 0 {
		return rerr.Newf("grid: densities must be finite and > 0, got rhoO=%g rhoW=%g", rhoO, rhoW)
	}
	g.Fluid.RhoO, g.Fluid.RhoW = rhoO, rhoW
	return nil
}

// SetRockProperties sets rock compressibility, the gravity datum, and the
// oil/water formation volume factors.
func (g *Grid) SetRockProperties(cr, depthRef, bo, bw float64) error {
	if !finite(cr, depthRef, bo, bw) || cr < 0 || bo <= 0 || bw <= 0 {
		return rerr.Newf("grid: invalid rock properties cr=%g depthRef=%g bo=%g bw=%g", cr, depthRef, bo, bw)
	}
	g.Rock.Cr, g.Rock.DepthRef = cr, depthRef
	g.Fluid.BO, g.Fluid.BW = bo, bw
	return nil
}

// SetRelPermProps sets the Corey endpoints and exponents.
func (g *Grid) SetRelPermProps(swc, sor, nw, no float64) error {
	p := relperm.Params{Swc: swc, Sor: sor, Nw: nw, No: no}
	if err := p.Validate(); err != nil {
		return err
	}
	return g.RelPerm.Init(p)
}

// SetCapillaryParams sets the Brooks-Corey entry pressure and pore-size
// exponent. pentry == 0 disables capillary pressure (spec §4.1).
func (g *Grid) SetCapillaryParams(pentry, lambda float64) error {
	if !finite(pentry, lambda) || pentry < 0 {
		return rerr.Newf("grid: invalid capillary parameters pentry=%g lambda=%g", pentry, lambda)
	}
	rp := g.RelPerm.Params()
	p := capillary.Params{Pentry: pentry, Lambda: lambda, Swc: rp.Swc, Sor: rp.Sor, Enabled: pentry > 0}
	if err := p.Validate(); err != nil {
		return err
	}
	return g.Capillary.Init(p)
}

// SetGravityEnabled toggles the gravity term in phase potentials.
func (g *Grid) SetGravityEnabled(enabled bool) {
	g.GravityEnabled = enabled
}

// SetInitialPressure sets a uniform initial pressure (bar) on every cell.
func (g *Grid) SetInitialPressure(p float64) error {
	if !finite(p) {
		return rerr.Newf("grid: initial pressure must be finite, got %g", p)
	}
	for i := range g.Cells {
		g.Cells[i].Pressure = p
	}
	return nil
}

// SetInitialSaturation sets a uniform initial water saturation on every
// cell.
func (g *Grid) SetInitialSaturation(sw float64) error {
	if !finite(sw) || sw < 0 || sw > 1 {
		return rerr.Newf("grid: initial saturation must be in [0,1], got %g", sw)
	}
	for i := range g.Cells {
		g.Cells[i].Sw = sw
	}
	return nil
}

// SetInitialSaturationPerLayer sets the initial water saturation one value
// per k-layer (len(swPerLayer) must equal nz).
func (g *Grid) SetInitialSaturationPerLayer(swPerLayer []float64) error {
	if len(swPerLayer) != g.Dims.Nz {
		return rerr.Newf("grid: expected %d saturation values (one per layer), got %d", g.Dims.Nz, len(swPerLayer))
	}
	for k, sw := range swPerLayer {
		if !finite(sw) || sw < 0 || sw > 1 {
			return rerr.Newf("grid: initial saturation at layer %d must be in [0,1], got %g", k, sw)
		}
	}
	for k := 0; k < g.Dims.Nz; k++ {
		for j := 0; j < g.Dims.Ny; j++ {
			for i := 0; i < g.Dims.Nx; i++ {
				g.Cells[g.Dims.Index(i, j, k)].Sw = swPerLayer[k]
			}
		}
	}
	return nil
}

// SetPermeabilityPerLayer sets kx, ky, kz one value per k-layer.
func (g *Grid) SetPermeabilityPerLayer(kx, ky, kz []float64) error {
	nz := g.Dims.Nz
	if len(kx) != nz || len(ky) != nz || len(kz) != nz {
		return rerr.Newf("grid: expected %d permeability values per axis (one per layer), got kx=%d ky=%d kz=%d", nz, len(kx), len(ky), len(kz))
	}
	for k := 0; k < nz; k++ {
		if kx[k] <= 0 || ky[k] <= 0 || kz[k] <= 0 {
			return rerr.Newf("grid: permeabilities must be > 0, layer %d has kx=%g ky=%g kz=%g", k, kx[k], ky[k], kz[k])
		}
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < g.Dims.Ny; j++ {
			for i := 0; i < g.Dims.Nx; i++ {
				c := &g.Cells[g.Dims.Index(i, j, k)]
				c.Kx, c.Ky, c.Kz = kx[k], ky[k], kz[k]
			}
		}
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Krw, Kro, mobilities, fractional flow and capillary pressure are the
// pure queries of spec §4.1 (the effective saturation itself is
// RelPerm.EffectiveSw). They operate on an explicit
// Sw rather than reading it from the cell, since C6 needs to evaluate them
// at both the current and upwind saturations while building fluxes.

// Krw returns water relative permeability at the given saturation.
func (g *Grid) Krw(sw float64) float64 { return g.RelPerm.Krw(sw) }

// Kro returns oil relative permeability at the given saturation.
func (g *Grid) Kro(sw float64) float64 { return g.RelPerm.Kro(sw) }

// MobilityWater returns lambda_w = krw/muW at the given saturation.
func (g *Grid) MobilityWater(sw float64) float64 {
	return g.RelPerm.Krw(sw) / g.Fluid.MuW
}

// MobilityOil returns lambda_o = kro/muO at the given saturation.
func (g *Grid) MobilityOil(sw float64) float64 {
	return g.RelPerm.Kro(sw) / g.Fluid.MuO
}

// FractionalFlow returns f_w = lambda_w / (lambda_w + lambda_o), 0 when
// the total mobility is zero.
func (g *Grid) FractionalFlow(sw float64) float64 {
	lw := g.MobilityWater(sw)
	lt := lw + g.MobilityOil(sw)
	if lt == 0 {
		return 0
	}
	return lw / lt
}

// CapillaryPressure returns Pc(Sw).
func (g *Grid) CapillaryPressure(sw float64) float64 {
	return g.Capillary.Pc(sw)
}

// PoreVolume returns Vp = dx*dy*dz*phi for the given cell, m3.
func (g *Grid) PoreVolume(id int) float64 {
	return g.Dx * g.Dy * g.Dz * g.Cells[id].Porosity
}

// TotalCompressibility returns c_t = co*So + cw*Sw + cr for the given
// saturation (spec §4.1: no extra phi factor, since PoreVolume already
// carries it).
func (g *Grid) TotalCompressibility(sw float64) float64 {
	return g.Fluid.CO*(1-sw) + g.Fluid.CW*sw + g.Rock.Cr
}
