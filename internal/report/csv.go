// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report writes a simulator's rate history to CSV. This is an
// external collaborator (spec §6): CORE only produces the in-memory
// []sim.RateEntry, this package is the thin writer consumed by the CLI and
// by batch/benchmark harnesses outside the simulation core, grounded on
// gofem/out's accumulation of per-output-time series without pulling in a
// plotting dependency.
package report

import (
	"os"

	"github.com/gocarina/gocsv"

	"github.com/sergeyfarin/ressim/internal/rerr"
	"github.com/sergeyfarin/ressim/internal/sim"
)

// rateRow is the gocsv-tagged mirror of sim.RateEntry; gocsv marshals
// exported fields via struct tags, so the public RateEntry type (which has
// no CSV concerns) stays decoupled from the on-disk column names.
type rateRow struct {
	Time                           float64 `csv:"time_days"`
	TotalInjection                 float64 `csv:"total_injection_sm3"`
	TotalProductionOil             float64 `csv:"total_production_oil_sm3"`
	TotalProductionLiquid          float64 `csv:"total_production_liquid_sm3"`
	TotalInjectionReservoir        float64 `csv:"total_injection_reservoir_m3"`
	TotalProductionLiquidReservoir float64 `csv:"total_production_liquid_reservoir_m3"`
	VRR                            float64 `csv:"vrr"`
	MaterialBalanceErrorM3         float64 `csv:"material_balance_error_m3"`
}

// WriteRateHistory writes every entry of history to path as CSV, one row
// per Step call, with a header row of the column names above.
func WriteRateHistory(path string, history []sim.RateEntry) error {
	rows := make([]rateRow, len(history))
	for i, e := range history {
		rows[i] = rateRow{
			Time:                           e.Time,
			TotalInjection:                 e.TotalInjection,
			TotalProductionOil:             e.TotalProductionOil,
			TotalProductionLiquid:          e.TotalProductionLiquid,
			TotalInjectionReservoir:        e.TotalInjectionReservoir,
			TotalProductionLiquidReservoir: e.TotalProductionLiquidReservoir,
			VRR:                            e.VRR,
			MaterialBalanceErrorM3:         e.MaterialBalanceErrorM3,
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return rerr.Wrap(err, "report: creating %s", path)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return rerr.Wrap(err, "report: writing CSV rows to %s", path)
	}
	return nil
}
