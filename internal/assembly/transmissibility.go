// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assembly implements the transmissibility/flux assembler (C3) and
// the pressure system builder (C4) of spec §4.3-4.4. It is the structured-
// grid analogue of gofem's fem.Domain: where fem assembles element
// stiffness into a global Triplet over an unstructured mesh, this package
// assembles face transmissibilities into the same sparse-triplet shape
// over a regular lattice addressed by (i,j,k).
package assembly

import (
	"github.com/sergeyfarin/ressim/internal/grid"
	"github.com/sergeyfarin/ressim/internal/units"
)

// Axis identifies a face direction.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Face is one internal face between cells A and B (A<B), with its
// geometric (permeability+geometry only, no mobility) transmissibility
// already combined by harmonic mean and unit-converted. Faces are built
// once from the static grid geometry and permeability field and reused by
// every step, per spec §5 ("workspace vectors ... pre-allocated ...
// reused").
type Face struct {
	A, B  int
	Axis  Axis
	Tgeom float64 // C * harmonic-mean geometric transmissibility
}

// halfT returns the geometric half-transmissibility of a cell in the
// given direction, before combining with its neighbor.
//
//	T = k_d * area / (0.5*length)
func halfT(kd, area, length float64) float64 {
	if kd <= 0 {
		return 0
	}
	return kd * area / (0.5 * length)
}

// BuildFaces enumerates every internal face of the grid and computes its
// geometric transmissibility (spec §4.3).
func BuildFaces(g *grid.Grid) []Face {
	d := g.Dims
	faces := make([]Face, 0, 3*d.NumCells())
	areaX := g.Dy * g.Dz
	areaY := g.Dx * g.Dz
	areaZ := g.Dx * g.Dy

	for k := 0; k < d.Nz; k++ {
		for j := 0; j < d.Ny; j++ {
			for i := 0; i < d.Nx; i++ {
				id := d.Index(i, j, k)
				c := &g.Cells[id]
				if i+1 < d.Nx {
					nid := d.Index(i+1, j, k)
					n := &g.Cells[nid]
					ti := halfT(c.Kx, areaX, g.Dx)
					tn := halfT(n.Kx, areaX, g.Dx)
					faces = append(faces, Face{A: id, B: nid, Axis: AxisX, Tgeom: units.PeacemanConst * harmonic(ti, tn)})
				}
				if j+1 < d.Ny {
					nid := d.Index(i, j+1, k)
					n := &g.Cells[nid]
					ti := halfT(c.Ky, areaY, g.Dy)
					tn := halfT(n.Ky, areaY, g.Dy)
					faces = append(faces, Face{A: id, B: nid, Axis: AxisY, Tgeom: units.PeacemanConst * harmonic(ti, tn)})
				}
				if k+1 < d.Nz {
					nid := d.Index(i, j, k+1)
					n := &g.Cells[nid]
					ti := halfT(c.Kz, areaZ, g.Dz)
					tn := halfT(n.Kz, areaZ, g.Dz)
					faces = append(faces, Face{A: id, B: nid, Axis: AxisZ, Tgeom: units.PeacemanConst * harmonic(ti, tn)})
				}
			}
		}
	}
	return faces
}

// harmonic returns the harmonic mean of two half-transmissibilities, 0 if
// either is 0 (a sealed face).
func harmonic(ti, tn float64) float64 {
	if ti <= 0 || tn <= 0 {
		return 0
	}
	return 2 * ti * tn / (ti + tn)
}

// facePotentials computes the four phase potentials at the two cells of a
// face, the upwind water/oil mobilities chosen by their sign (spec §4.3:
// "upstream is chosen by the sign of the phase potential"), and the raw
// gravity potential terms (needed again by the capillary/gravity source
// term, so callers don't recompute them).
func facePotentials(g *grid.Grid, f Face, p, sw, pc []float64) (phiWA, phiWB, phiOA, phiOB, lw, lo, gwA, gwB, goA, goB float64) {
	a, b := f.A, f.B

	if g.GravityEnabled {
		gwA = units.GravityPotentialBar(g.Fluid.RhoW, g.Cells[a].Depth)
		gwB = units.GravityPotentialBar(g.Fluid.RhoW, g.Cells[b].Depth)
		goA = units.GravityPotentialBar(g.Fluid.RhoO, g.Cells[a].Depth)
		goB = units.GravityPotentialBar(g.Fluid.RhoO, g.Cells[b].Depth)
	}

	phiWA = p[a] + gwA
	phiWB = p[b] + gwB
	phiOA = p[a] + pc[a] + goA
	phiOB = p[b] + pc[b] + goB

	if phiWA >= phiWB {
		lw = g.MobilityWaterAt(a, sw[a])
	} else {
		lw = g.MobilityWaterAt(b, sw[b])
	}
	if phiOA >= phiOB {
		lo = g.MobilityOilAt(a, sw[a])
	} else {
		lo = g.MobilityOilAt(b, sw[b])
	}
	return
}

// EvalFace computes the upwind phase transmissibilities and the explicit
// gravity/capillary source term for one face, given the current pressure
// and saturation field. pc holds the capillary pressure already evaluated
// at every cell (Pc(Sw) is looked up once per cell per assembly, not per
// face).
func EvalFace(g *grid.Grid, f Face, p, sw, pc []float64) (tw, to, source float64) {
	_, _, _, _, lw, lo, gwA, gwB, goA, goB := facePotentials(g, f, p, sw, pc)
	tw = f.Tgeom * lw
	to = f.Tgeom * lo

	// explicit gravity+capillary source, derived from the total-velocity
	// potential-form flux
	//   q(A->B) = tw*(phiWA-phiWB) + to*(phiOA-phiOB)
	//           = (tw+to)*(p[a]-p[b]) + source
	// so that A*p = b stays expressed purely in p, with the remainder
	// carried as a lagged (explicit) RHS source, per spec §4.4. This
	// folds gravity into the water term and gravity+capillary into the
	// oil term, since Pc only appears in the oil potential; spec §4.3's
	// simplified wording ("a source term T_w*(Pc(i)-Pc(j))") is the
	// special case To==Tw.
	source = tw*(gwA-gwB) + to*((pc[f.A]-pc[f.B])+(goA-goB))
	return
}

// FaceFluxes computes the per-phase volumetric flux A->B for one face
// (positive = flowing from A into B), using upwind mobility, for the
// explicit saturation transport of C6 (spec §4.6: "per-phase upwind
// mobilities in the explicit saturation flux of C6" is mandatory, unlike
// C4 where an averaged value is merely permitted).
func FaceFluxes(g *grid.Grid, f Face, p, sw, pc []float64) (qw, qo float64) {
	phiWA, phiWB, phiOA, phiOB, lw, lo, _, _, _, _ := facePotentials(g, f, p, sw, pc)
	tw := f.Tgeom * lw
	to := f.Tgeom * lo
	qw = tw * (phiWA - phiWB)
	qo = to * (phiOA - phiOB)
	return
}
