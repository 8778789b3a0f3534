// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"time"

	"golang.org/x/exp/rand"

	"github.com/sergeyfarin/ressim/internal/rerr"
)

// defaultPorosity is used until SetPorosity/SetPorosityPerLayer is called;
// spec §3 requires phi in (0,1) but lists no dedicated porosity setter
// among the external interfaces of §6, so a sensible uniform default keeps
// every scenario runnable out of the box.
const defaultPorosity = 0.2

// SetPorosity sets a uniform porosity on every cell.
func (g *Grid) SetPorosity(phi float64) error {
	if !finite(phi) || phi <= 0 || phi >= 1 {
		return rerr.Newf("grid: porosity must be in (0,1), got %g", phi)
	}
	for i := range g.Cells {
		g.Cells[i].Porosity = phi
	}
	return nil
}

// SetPorosityPerLayer sets porosity one value per k-layer.
func (g *Grid) SetPorosityPerLayer(phiPerLayer []float64) error {
	if len(phiPerLayer) != g.Dims.Nz {
		return rerr.Newf("grid: expected %d porosity values (one per layer), got %d", g.Dims.Nz, len(phiPerLayer))
	}
	for k, phi := range phiPerLayer {
		if !finite(phi) || phi <= 0 || phi >= 1 {
			return rerr.Newf("grid: porosity at layer %d must be in (0,1), got %g", k, phi)
		}
	}
	for k := 0; k < g.Dims.Nz; k++ {
		for j := 0; j < g.Dims.Ny; j++ {
			for i := 0; i < g.Dims.Nx; i++ {
				g.Cells[g.Dims.Index(i, j, k)].Porosity = phiPerLayer[k]
			}
		}
	}
	return nil
}

// ensureDefaultPorosity fills porosity with defaultPorosity on any cell
// that is still zero; called once, at construction, by New so a grid that never
// calls a porosity setter remains a valid, runnable scenario.
func (g *Grid) ensureDefaultPorosity() {
	for i := range g.Cells {
		if g.Cells[i].Porosity == 0 {
			g.Cells[i].Porosity = defaultPorosity
		}
	}
}

// SetPermeabilityRandom fills kx=ky=kz with values drawn uniformly from
// [min,max] using a fresh generator seeded from the current time, so
// successive calls are not reproducible.
func (g *Grid) SetPermeabilityRandom(min, max float64) error {
	return g.setPermeabilityRandom(min, max, rand.New(rand.NewSource(uint64(time.Now().UnixNano()))))
}

// SetPermeabilityRandomSeeded is the deterministic counterpart of
// SetPermeabilityRandom: the same seed always produces the same grid
// state, the testable property of spec §8 item 7. We use
// golang.org/x/exp/rand rather than math/rand so the generated sequence is
// insulated from standard-library algorithm changes across Go releases.
func (g *Grid) SetPermeabilityRandomSeeded(min, max float64, seed uint64) error {
	return g.setPermeabilityRandom(min, max, rand.New(rand.NewSource(seed)))
}

func (g *Grid) setPermeabilityRandom(min, max float64, src *rand.Rand) error {
	if !finite(min, max) || min <= 0 || max < min {
		return rerr.Newf("grid: invalid permeability range [%g,%g]", min, max)
	}
	span := max - min
	for i := range g.Cells {
		k := min + span*src.Float64()
		g.Cells[i].Kx, g.Cells[i].Ky, g.Cells[i].Kz = k, k, k
	}
	return nil
}
