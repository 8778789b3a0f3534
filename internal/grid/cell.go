// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

// Cell holds the per-cell rock/fluid state of spec §3. Wells and faces
// reference cells by linear index only, never by pointer (spec §9
// "Ownership / cyclic references").
type Cell struct {
	Porosity      float64 // phi, (0,1)
	Kx, Ky, Kz    float64 // permeabilities, mD
	Pressure      float64 // p, bar
	Sw            float64 // water saturation, [Swc, 1-Sor]
	Depth         float64 // z, meters below reference datum
	RegionID      int     // selects a SCAL rock-fluid region, 0 is the global default
}

// So returns the dependent oil saturation, 1 - Sw.
func (c Cell) So() float64 { return 1 - c.Sw }

// FluidProps holds the process-wide, immutable fluid properties of
// spec §3 (oil-field units).
type FluidProps struct {
	MuO, MuW   float64 // viscosities, cP
	CO, CW     float64 // compressibilities, 1/bar
	RhoO, RhoW float64 // densities, kg/m3
	BO, BW     float64 // formation volume factors, dimensionless
}

// RockProps holds process-wide rock properties.
type RockProps struct {
	Cr          float64 // rock compressibility, 1/bar
	DepthRef    float64 // reference datum for gravity, m
}
