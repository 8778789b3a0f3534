// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import "math"

// Workspace holds the PCG vectors pre-allocated once and reused every
// call, per spec §5 ("Workspace vectors for the PCG solver are
// pre-allocated at construction and reused, never reallocated per
// iteration").
type Workspace struct {
	r, z, p, ap []float64
}

// NewWorkspace allocates a Workspace sized for an n-unknown system.
func NewWorkspace(n int) *Workspace {
	return &Workspace{
		r:  make([]float64, n),
		z:  make([]float64, n),
		p:  make([]float64, n),
		ap: make([]float64, n),
	}
}

// Result reports the outcome of a PCG solve (spec §4.5).
type Result struct {
	X          []float64
	Iterations int
	Residual   float64 // achieved ||r||_2 / ||b||_2
	Converged  bool
	Warning    string // non-empty on the iteration cap being reached or a p^T A p == 0 breakdown

	// ResidualHistory holds the relative residual ||r||_2/||b||_2 at
	// iteration 0 (the initial guess) and after every subsequent
	// iteration, so callers can confirm the monotonic decrease PCG
	// guarantees on a symmetric positive-definite system (spec §8
	// testable property 5).
	ResidualHistory []float64
}

const (
	maxIterations  = 1000
	relTol         = 1e-8
	absTol         = 1e-12
)

// Solve runs diagonal-preconditioned conjugate gradient on A*x=b, starting
// from x0 (typically the previous pressure field, per spec §4.5 "Accepts
// an initial guess"). x0 is used in place as the returned solution vector.
//
// Convergence is ||r||_2/||b||_2 < relTol or ||r||_2 < absTol, whichever
// comes first; on reaching the 1000-iteration cap without convergence, the
// last iterate is returned together with a warning and the achieved
// relative residual (spec §4.5 - "never silently").
func Solve(a *CSR, b, x0 []float64, ws *Workspace) Result {
	n := a.N
	x := x0
	diag := a.Diag()

	bNorm := norm2(b)
	if bNorm == 0 {
		bNorm = 1
	}

	// r = b - A*x
	a.Mul(ws.ap, x)
	for i := 0; i < n; i++ {
		ws.r[i] = b[i] - ws.ap[i]
	}
	rNorm := norm2(ws.r)
	history := []float64{rNorm / bNorm}
	if rNorm/bNorm < relTol || rNorm < absTol {
		return Result{X: x, Iterations: 0, Residual: rNorm / bNorm, Converged: true, ResidualHistory: history}
	}

	// z = M^-1 r, p = z
	jacobi(ws.z, ws.r, diag)
	copy(ws.p, ws.z)
	rz := dot(ws.r, ws.z)

	for it := 1; it <= maxIterations; it++ {
		a.Mul(ws.ap, ws.p)
		pAp := dot(ws.p, ws.ap)
		if pAp == 0 {
			return Result{X: x, Iterations: it, Residual: rNorm / bNorm, Converged: false,
				Warning: "pcg: breakdown, p^T A p == 0", ResidualHistory: history}
		}
		alpha := rz / pAp

		for i := 0; i < n; i++ {
			x[i] += alpha * ws.p[i]
			ws.r[i] -= alpha * ws.ap[i]
		}

		rNorm = norm2(ws.r)
		history = append(history, rNorm/bNorm)
		if rNorm/bNorm < relTol || rNorm < absTol {
			return Result{X: x, Iterations: it, Residual: rNorm / bNorm, Converged: true, ResidualHistory: history}
		}

		jacobi(ws.z, ws.r, diag)
		rzNew := dot(ws.r, ws.z)
		beta := rzNew / rz
		for i := 0; i < n; i++ {
			ws.p[i] = ws.z[i] + beta*ws.p[i]
		}
		rz = rzNew
	}

	return Result{
		X:               x,
		Iterations:      maxIterations,
		Residual:        rNorm / bNorm,
		Converged:       false,
		Warning:         "pcg: reached iteration cap without converging",
		ResidualHistory: history,
	}
}

func jacobi(z, r, diag []float64) {
	for i := range r {
		if diag[i] != 0 {
			z[i] = r[i] / diag[i]
		} else {
			z[i] = r[i]
		}
	}
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func norm2(a []float64) float64 {
	return math.Sqrt(dot(a, a))
}
