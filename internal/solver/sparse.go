// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solver implements the 7-banded sparse matrix representation and
// the preconditioned conjugate-gradient solver of C4/C5. The Triplet type
// mirrors gosl/la.Triplet's build-by-Put, compress-once shape (seen
// throughout gofem/fem, e.g. fem/domain.go's "o.Kb = new(la.Triplet);
// o.Kb.Init(...)" and every element's "AddToKb(Kb *la.Triplet, ...)"): an
// assembler appends (row,col,val) entries, possibly with duplicates, then
// the triplet is compressed once into a format that supports SpMV without
// further allocation.
package solver

import "sort"

// Triplet is a coordinate-format (COO) sparse matrix under construction.
// Duplicate (row,col) entries are summed on compression, exactly like
// la.Triplet's accumulate-then-assemble semantics.
type Triplet struct {
	n            int
	rows, cols   []int
	vals         []float64
}

// NewTriplet allocates a Triplet for an n x n matrix with an estimated
// nnzCap entries.
func NewTriplet(n, nnzCap int) *Triplet {
	return &Triplet{
		n:    n,
		rows: make([]int, 0, nnzCap),
		cols: make([]int, 0, nnzCap),
		vals: make([]float64, 0, nnzCap),
	}
}

// Put appends one (i,j,v) entry; duplicates are summed at compression.
func (t *Triplet) Put(i, j int, v float64) {
	t.rows = append(t.rows, i)
	t.cols = append(t.cols, j)
	t.vals = append(t.vals, v)
}

// CSR is a compressed-sparse-row matrix supporting allocation-free SpMV.
type CSR struct {
	N      int
	RowPtr []int
	ColIdx []int
	Vals   []float64
	diag   []float64 // cached diagonal for the Jacobi preconditioner
}

// ToCSR compresses the triplet into CSR form, summing duplicate entries
// and sorting each row's column indices.
func (t *Triplet) ToCSR() *CSR {
	n := t.n
	counts := make([]int, n+1)
	for _, r := range t.rows {
		counts[r+1]++
	}
	for i := 0; i < n; i++ {
		counts[i+1] += counts[i]
	}
	rowPtr := counts

	type entry struct {
		col int
		val float64
	}
	nnz := len(t.rows)
	colIdx := make([]int, nnz)
	vals := make([]float64, nnz)
	cursor := append([]int(nil), rowPtr[:n]...)
	for k := 0; k < nnz; k++ {
		r := t.rows[k]
		pos := cursor[r]
		colIdx[pos] = t.cols[k]
		vals[pos] = t.vals[k]
		cursor[r]++
	}

	// sort each row by column and sum duplicates
	outColIdx := make([]int, 0, nnz)
	outVals := make([]float64, 0, nnz)
	outRowPtr := make([]int, n+1)
	for r := 0; r < n; r++ {
		start, end := rowPtr[r], rowPtr[r+1]
		row := make([]entry, end-start)
		for i := start; i < end; i++ {
			row[i-start] = entry{colIdx[i], vals[i]}
		}
		sort.Slice(row, func(a, b int) bool { return row[a].col < row[b].col })
		outRowPtr[r] = len(outColIdx)
		for i, e := range row {
			if i > 0 && e.col == row[i-1].col {
				outVals[len(outVals)-1] += e.val
				continue
			}
			outColIdx = append(outColIdx, e.col)
			outVals = append(outVals, e.val)
		}
	}
	outRowPtr[n] = len(outColIdx)

	m := &CSR{N: n, RowPtr: outRowPtr, ColIdx: outColIdx, Vals: outVals}
	m.diag = make([]float64, n)
	for r := 0; r < n; r++ {
		for i := outRowPtr[r]; i < outRowPtr[r+1]; i++ {
			if outColIdx[i] == r {
				m.diag[r] = outVals[i]
			}
		}
	}
	return m
}

// Diag returns the cached diagonal, used by the Jacobi preconditioner.
func (m *CSR) Diag() []float64 { return m.diag }

// Mul computes dst = A*x without allocating.
func (m *CSR) Mul(dst, x []float64) {
	for r := 0; r < m.N; r++ {
		var sum float64
		for i := m.RowPtr[r]; i < m.RowPtr[r+1]; i++ {
			sum += m.Vals[i] * x[m.ColIdx[i]]
		}
		dst[r] = sum
	}
}
