// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"math"
	"testing"

	"github.com/sergeyfarin/ressim/internal/capillary"
	"github.com/sergeyfarin/ressim/internal/relperm"
)

const tolGr = 1e-9

func newTestGrid(t *testing.T) *Grid {
	t.Helper()
	g, err := New(2, 2, 2)
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
	return g
}

func TestNewRejectsBadDims(t *testing.T) {
	if _, err := New(0, 1, 1); err == nil {
		t.Error("expected an error for nx=0")
	}
}

func TestFractionalFlowBounds(t *testing.T) {
	g := newTestGrid(t)
	if fw := g.FractionalFlow(g.RelPerm.Params().Swc); fw != 0 {
		t.Errorf("f_w at Swc should be 0, got %g", fw)
	}
	if fw := g.FractionalFlow(1 - g.RelPerm.Params().Sor); math.Abs(fw-1) > tolGr {
		t.Errorf("f_w at 1-Sor should be 1, got %g", fw)
	}
}

func TestTotalCompressibility(t *testing.T) {
	g := newTestGrid(t)
	ct := g.TotalCompressibility(0.5)
	want := g.Fluid.CO*0.5 + g.Fluid.CW*0.5 + g.Rock.Cr
	if math.Abs(ct-want) > tolGr {
		t.Errorf("TotalCompressibility = %g, want %g", ct, want)
	}
}

func TestPoreVolumeUsesDefaultPorosity(t *testing.T) {
	g := newTestGrid(t)
	vp := g.PoreVolume(0)
	want := 10.0 * 10.0 * 10.0 * defaultPorosity
	if math.Abs(vp-want) > tolGr {
		t.Errorf("PoreVolume = %g, want %g", vp, want)
	}
}

func TestSetPermeabilityRandomSeededDeterministic(t *testing.T) {
	g1 := newTestGrid(t)
	g2 := newTestGrid(t)
	if err := g1.SetPermeabilityRandomSeeded(10, 500, 42); err != nil {
		t.Fatal(err)
	}
	if err := g2.SetPermeabilityRandomSeeded(10, 500, 42); err != nil {
		t.Fatal(err)
	}
	for i := range g1.Cells {
		if g1.Cells[i].Kx != g2.Cells[i].Kx {
			t.Fatalf("cell %d: seeded permeability diverged: %g vs %g", i, g1.Cells[i].Kx, g2.Cells[i].Kx)
		}
	}
}

func TestSetInitialSaturationPerLayerWrongLength(t *testing.T) {
	g := newTestGrid(t)
	if err := g.SetInitialSaturationPerLayer([]float64{0.2}); err == nil {
		t.Error("expected an error for a per-layer slice of the wrong length")
	}
}

func TestRegionOverridesRelPerm(t *testing.T) {
	g := newTestGrid(t)
	relParams := relperm.Params{Swc: 0.05, Sor: 0.05, Nw: 3, No: 3}
	capParams := capillary.Params{Pentry: 2, Lambda: 1.5, Swc: relParams.Swc, Sor: relParams.Sor, Enabled: true}
	if err := g.SetRegion(1, "corey", relParams, "bc", capParams); err != nil {
		t.Fatal(err)
	}
	g.Cells[0].RegionID = 1
	// at sw=0.5 both curves have se=0.5: region 1 gives 0.5^3=0.125, the
	// global curve (Swc=Sor=0.2, Nw=2) gives 0.5^2=0.25.
	if krw := g.KrwAt(0, 0.5); math.Abs(krw-0.125) > tolGr {
		t.Errorf("region 1's krw at sw=0.5 should be 0.125, got %g", krw)
	}
	globalKrw := g.KrwAt(1, 0.5)
	if math.Abs(globalKrw-0.25) > tolGr {
		t.Errorf("cell outside the region should still use the global curve (0.25): got %g", globalKrw)
	}
}
