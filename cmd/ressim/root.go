// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd contains the ressim command-line interface: a thin external
// collaborator over the simulation core (spec §1 explicitly places
// CSV/JSON export and benchmark harnesses outside the core boundary).
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// RootCmd is the ressim CLI's entry point.
var RootCmd = &cobra.Command{
	Use:   "ressim",
	Short: "A two-phase black-oil reservoir simulator",
	Long: `ressim runs an IMPES (implicit-pressure, explicit-saturation)
two-phase black-oil reservoir simulation over a structured grid with
Peaceman wells.`,
}

// Execute runs the CLI, exiting the process on error.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "scenario file (.json, .yml)")
	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(benchCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}
