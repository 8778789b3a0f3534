// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/sergeyfarin/ressim/internal/sim"
)

var benchRefined bool

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the Buckley-Leverett acceptance scenarios of the testable-properties suite",
	Long: `bench builds the two 1D Buckley-Leverett displacement scenarios
(favorable and adverse mobility ratio) and reports the breakthrough pore
volume injected against its analytical reference. This is a benchmark
harness external to the simulation core (spec §1): it consumes only the
numerical outputs the core already exposes.`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().BoolVar(&benchRefined, "refined", false, "use the refined Δt=0.125d discretization")
}

// blCase is one Buckley-Leverett acceptance scenario of the testable
// properties.
type blCase struct {
	name                     string
	swc, sor, nw, no         float64
	muW, muO                 float64
	initSw                   float64
	referencePVBT, tolerance float64
}

var blCases = []blCase{
	{name: "BL-Case-A", swc: 0.1, sor: 0.1, nw: 2.0, no: 2.0, muW: 0.5, muO: 1.0, initSw: 0.1, referencePVBT: 0.586, tolerance: 0.25},
	{name: "BL-Case-B", swc: 0.15, sor: 0.15, nw: 2.2, no: 2.0, muW: 0.6, muO: 1.4, initSw: 0.15, referencePVBT: 0.507, tolerance: 0.30},
}

const (
	blNx, blNy, blNz       = 96, 1, 1
	blDx, blDy, blDz       = 10.0, 10.0, 10.0
	blPermMD               = 2000.0
	blRate                 = 350.0 // m3/day, rate-controlled injector and producer
	blTotalDays            = 30.0 // 60 steps * 0.5 d
	blWatercutBreakthrough = 0.01
)

func runBench(cmd *cobra.Command, args []string) error {
	stepDays := 0.5
	if benchRefined {
		stepDays = 0.125
	}
	numSteps := int(math.Round(blTotalDays / stepDays))

	for _, c := range blCases {
		pvBT, err := runBuckleyLeverett(c, stepDays, numSteps)
		if err != nil {
			return fmt.Errorf("ressim: %s: %w", c.name, err)
		}
		tol := c.tolerance
		if benchRefined {
			if c.name == "BL-Case-A" {
				tol = 0.05
			} else {
				tol = 0.04
			}
		}
		relErr := math.Abs(pvBT-c.referencePVBT) / c.referencePVBT
		status := "PASS"
		if relErr > tol {
			status = "FAIL"
		}
		fmt.Printf("%s: PV_BT=%.4f reference=%.4f rel_err=%.4f tol=%.4f [%s]\n",
			c.name, pvBT, c.referencePVBT, relErr, tol, status)
	}
	return nil
}

// runBuckleyLeverett builds the 1D grid, injector and producer of one
// Buckley-Leverett case and returns the pore volume injected at water
// breakthrough (the producer's water cut first reaching 0.01).
func runBuckleyLeverett(c blCase, stepDays float64, numSteps int) (float64, error) {
	s, err := sim.New(blNx, blNy, blNz)
	if err != nil {
		return 0, err
	}
	if err := s.SetCellDimensions(blDx, blDy, blDz); err != nil {
		return 0, err
	}
	if err := s.SetFluidProperties(c.muO, c.muW); err != nil {
		return 0, err
	}
	if err := s.SetFluidCompressibilities(1e-5, 1e-6); err != nil {
		return 0, err
	}
	if err := s.SetFluidDensities(800, 1000); err != nil {
		return 0, err
	}
	if err := s.SetRockProperties(1e-6, 2000, 1.2, 1.0); err != nil {
		return 0, err
	}
	if err := s.SetRelPermProps(c.swc, c.sor, c.nw, c.no); err != nil {
		return 0, err
	}
	if err := s.SetCapillaryParams(0, 1); err != nil {
		return 0, err
	}
	if err := s.SetPermeabilityPerLayer([]float64{blPermMD}, []float64{blPermMD}, []float64{blPermMD}); err != nil {
		return 0, err
	}
	if err := s.SetInitialPressure(200); err != nil {
		return 0, err
	}
	if err := s.SetInitialSaturation(c.initSw); err != nil {
		return 0, err
	}
	s.SetWellControlModes(sim.Rate, sim.Rate)
	if err := s.SetTargetWellRates(blRate, blRate); err != nil {
		return 0, err
	}
	if _, err := s.AddWell(0, 0, 0, 200, 0.1, 0, true); err != nil {
		return 0, err
	}
	if _, err := s.AddWell(blNx-1, 0, 0, 200, 0.1, 0, false); err != nil {
		return 0, err
	}

	poreVolume := float64(blNx*blNy*blNz) * blDx * blDy * blDz * 0.2
	cumInjected := 0.0
	for i := 0; i < numSteps; i++ {
		if err := s.Step(stepDays); err != nil {
			return 0, err
		}
		hist := s.GetRateHistory()
		e := hist[len(hist)-1]
		cumInjected += e.TotalInjection

		waterCut := 0.0
		if e.TotalProductionLiquid > 0 {
			waterProd := e.TotalProductionLiquid - e.TotalProductionOil
			waterCut = waterProd / e.TotalProductionLiquid
		}
		if waterCut >= blWatercutBreakthrough {
			return cumInjected / poreVolume, nil
		}
	}
	return cumInjected / poreVolume, nil
}
