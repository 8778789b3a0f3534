// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import "github.com/sergeyfarin/ressim/internal/wells"

// AddWell adds one perforation at (i,j,k), matching spec §6's
// add_well(i, j, k, bhp, r_w, skin, injector). The well starts in BHP
// control at the given bhp; call SetWellControlModes/SetTargetWellRates
// beforehand to start it in rate control instead. Returns the created
// well so callers can set per-well overrides.
func (s *Simulator) AddWell(i, j, k int, bhp, rw, skin float64, injector bool) (*wells.Well, error) {
	d := s.Grid.Dims
	if err := wells.Validate(i, j, k, d.Nx, d.Ny, d.Nz, bhp, rw); err != nil {
		return nil, err
	}
	ctrl := s.producerControl
	rate := s.targetProdRate
	if injector {
		ctrl = s.injectorControl
		rate = s.targetInjRate
	}
	w := &wells.Well{
		I: i, J: j, K: k,
		Rw:         rw,
		Skin:       skin,
		Injector:   injector,
		Control:    ctrl,
		TargetBHP:  bhp,
		TargetRate: rate,
	}
	s.Wells = append(s.Wells, w)
	return w, nil
}
