// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"math"
	"testing"

	"github.com/sergeyfarin/ressim/internal/assembly"
	"github.com/sergeyfarin/ressim/internal/grid"
	"github.com/sergeyfarin/ressim/internal/wells"
)

const tolTr = 1e-9

func newTransportGrid(t *testing.T, nx, ny, nz int) *grid.Grid {
	t.Helper()
	g, err := grid.New(nx, ny, nz)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.SetCellDimensions(10, 10, 10); err != nil {
		t.Fatal(err)
	}
	if err := g.SetFluidProperties(1.0, 0.5); err != nil {
		t.Fatal(err)
	}
	if err := g.SetFluidCompressibilities(1e-5, 1e-6); err != nil {
		t.Fatal(err)
	}
	if err := g.SetFluidDensities(800, 1000); err != nil {
		t.Fatal(err)
	}
	if err := g.SetRockProperties(1e-6, 2000, 1.2, 1.0); err != nil {
		t.Fatal(err)
	}
	if err := g.SetRelPermProps(0.2, 0.2, 2, 2); err != nil {
		t.Fatal(err)
	}
	if err := g.SetCapillaryParams(0, 1); err != nil {
		t.Fatal(err)
	}
	kx := make([]float64, nz)
	for i := range kx {
		kx[i] = 100
	}
	if err := g.SetPermeabilityPerLayer(kx, kx, kx); err != nil {
		t.Fatal(err)
	}
	if err := g.SetInitialPressure(200); err != nil {
		t.Fatal(err)
	}
	if err := g.SetInitialSaturation(0.5); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestUpdateClampsAtEndpoints(t *testing.T) {
	g := newTransportGrid(t, 2, 1, 1)
	faces := assembly.BuildFaces(g)
	n := g.Dims.NumCells()
	pNew := make([]float64, n)
	swOld := make([]float64, n)
	for i := range swOld {
		swOld[i] = 0.1 // below Swc=0.2
		pNew[i] = 200
	}
	// with equal pressures and no wells nothing moves, so the starting
	// value below Swc must come back clamped up to the floor.
	res := Update(g, faces, nil, pNew, swOld, 1.0)
	for i, sw := range res.Sw {
		if sw < 0.2-tolTr || sw > 0.8+tolTr {
			t.Errorf("cell %d: Sw=%g out of [Swc,1-Sor]", i, sw)
		}
	}
}

func TestUpdateNoFlowNoWellsIsStationary(t *testing.T) {
	g := newTransportGrid(t, 2, 1, 1)
	faces := assembly.BuildFaces(g)
	n := g.Dims.NumCells()
	pNew := make([]float64, n)
	swOld := make([]float64, n)
	for i := range swOld {
		swOld[i] = 0.5
		pNew[i] = 200
	}
	res := Update(g, faces, nil, pNew, swOld, 1.0)
	for i, sw := range res.Sw {
		if math.Abs(sw-0.5) > tolTr {
			t.Errorf("cell %d: expected stationary Sw=0.5, got %g", i, sw)
		}
	}
	if res.MaxDSw > tolTr {
		t.Errorf("expected MaxDSw~0, got %g", res.MaxDSw)
	}
}

func TestUpdateInjectorAddsWater(t *testing.T) {
	g := newTransportGrid(t, 1, 1, 1)
	w := &wells.Well{I: 0, J: 0, K: 0, Injector: true, PI: 1.0, EffectiveBHP: 300}
	pNew := []float64{200}
	swOld := []float64{0.5}
	res := Update(g, nil, []*wells.Well{w}, pNew, swOld, 1.0)
	if res.Sw[0] <= 0.5 {
		t.Errorf("expected an injector to raise Sw, got %g", res.Sw[0])
	}
	if len(res.WellRates) != 1 || res.WellRates[0].WaterResOut >= 0 {
		t.Errorf("expected a negative (entering) WaterResOut for the injector, got %+v", res.WellRates)
	}
}

func TestUpdateProducerSplitsByFractionalFlow(t *testing.T) {
	g := newTransportGrid(t, 1, 1, 1)
	w := &wells.Well{I: 0, J: 0, K: 0, Injector: false, PI: 1.0, EffectiveBHP: 100}
	pNew := []float64{200}
	swOld := []float64{0.5}
	res := Update(g, nil, []*wells.Well{w}, pNew, swOld, 1.0)
	if len(res.WellRates) != 1 {
		t.Fatalf("expected one well rate entry, got %d", len(res.WellRates))
	}
	wr := res.WellRates[0]
	if wr.WaterResOut <= 0 || wr.OilResOut <= 0 {
		t.Errorf("expected both phases to flow to a producer below Swc<Sw<1-Sor, got water=%g oil=%g", wr.WaterResOut, wr.OilResOut)
	}
	fw := g.FractionalFlowAt(0, 0.5)
	qTotal := wr.WaterResOut + wr.OilResOut
	if math.Abs(wr.WaterResOut-qTotal*fw) > 1e-6 {
		t.Errorf("water split doesn't match fractional flow: got %g, want %g", wr.WaterResOut, qTotal*fw)
	}
}

func TestUpdateSkipsZeroPIWells(t *testing.T) {
	g := newTransportGrid(t, 1, 1, 1)
	w := &wells.Well{I: 0, J: 0, K: 0, Injector: true, PI: 0, EffectiveBHP: 300}
	pNew := []float64{200}
	swOld := []float64{0.5}
	res := Update(g, nil, []*wells.Well{w}, pNew, swOld, 1.0)
	if len(res.WellRates) != 0 {
		t.Errorf("expected a zero-PI well to be skipped, got %+v", res.WellRates)
	}
	if math.Abs(res.Sw[0]-0.5) > tolTr {
		t.Errorf("expected no saturation change from a skipped well, got %g", res.Sw[0])
	}
}
