// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid holds the structured Cartesian lattice, per-cell rock/fluid
// state, and the pure SCAL/PVT queries of C1. The grid does not know about
// wells, transmissibility or the pressure system; it is the leaf of the
// dependency chain in spec §2.
package grid

import "github.com/sergeyfarin/ressim/internal/rerr"

// Dims holds the lattice dimensions nx, ny, nz.
type Dims struct {
	Nx, Ny, Nz int
}

// NumCells returns nx*ny*nz.
func (d Dims) NumCells() int {
	return d.Nx * d.Ny * d.Nz
}

// Index maps (i,j,k) to the linear cell id, id = i + j*nx + k*nx*ny.
func (d Dims) Index(i, j, k int) int {
	return i + j*d.Nx + k*d.Nx*d.Ny
}

// Coords maps a linear id back to (i,j,k).
func (d Dims) Coords(id int) (i, j, k int) {
	k = id / (d.Nx * d.Ny)
	rem := id % (d.Nx * d.Ny)
	j = rem / d.Nx
	i = rem % d.Nx
	return
}

// InBounds reports whether (i,j,k) is a valid cell address.
func (d Dims) InBounds(i, j, k int) bool {
	return i >= 0 && i < d.Nx && j >= 0 && j < d.Ny && k >= 0 && k < d.Nz
}

// ValidateDims checks nx,ny,nz >= 1, per spec §6 new(nx,ny,nz).
func ValidateDims(nx, ny, nz int) error {
	if nx < 1 || ny < 1 || nz < 1 {
		return rerr.Newf("grid: dimensions must be >= 1, got nx=%d ny=%d nz=%d", nx, ny, nz)
	}
	return nil
}
