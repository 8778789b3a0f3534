// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sergeyfarin/ressim/internal/config"
	"github.com/sergeyfarin/ressim/internal/report"
)

var runCmd = &cobra.Command{
	Use:   "run <scenario-file>",
	Short: "Run a single scenario and write its rate history to CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().String("out", "rates.csv", "output CSV path")
	runCmd.Flags().Float64("step-days", 0, "override the scenario's step size (days)")
	runCmd.Flags().Int("num-steps", 0, "override the scenario's step count")
	viper.BindPFlag("run.out", runCmd.Flags().Lookup("out"))
	viper.BindPFlag("run.step_days", runCmd.Flags().Lookup("step-days"))
	viper.BindPFlag("run.num_steps", runCmd.Flags().Lookup("num-steps"))
}

func runRun(cmd *cobra.Command, args []string) error {
	sc, err := config.Load(args[0])
	if err != nil {
		return err
	}

	s, err := sc.Build()
	if err != nil {
		return err
	}

	stepDays := sc.StepDays
	if v := viper.GetFloat64("run.step_days"); v > 0 {
		stepDays = v
	}
	numSteps := sc.NumSteps
	if v := viper.GetInt("run.num_steps"); v > 0 {
		numSteps = v
	}
	if stepDays <= 0 || numSteps <= 0 {
		return fmt.Errorf("ressim: step_days and num_steps must both be > 0 (scenario or --step-days/--num-steps)")
	}

	for i := 0; i < numSteps; i++ {
		if err := s.Step(stepDays); err != nil {
			return fmt.Errorf("ressim: step %d: %w", i, err)
		}
		if w := s.GetLastSolverWarning(); w != "" {
			fmt.Printf("t=%.4g: %s\n", s.GetTime(), w)
		}
	}

	outPath := viper.GetString("run.out")
	if err := report.WriteRateHistory(outPath, s.GetRateHistory()); err != nil {
		return err
	}
	fmt.Printf("wrote %d rate-history entries to %s\n", len(s.GetRateHistory()), outPath)
	return nil
}
