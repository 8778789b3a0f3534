// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wells

import (
	"math"
	"testing"
)

const tolWl = 1e-6

func TestValidateBounds(t *testing.T) {
	if err := Validate(0, 0, 0, 10, 10, 5, 200, 0.1); err != nil {
		t.Errorf("valid well rejected: %v", err)
	}
	if err := Validate(-1, 0, 0, 10, 10, 5, 200, 0.1); err == nil {
		t.Error("expected an error for i out of bounds")
	}
	if err := Validate(0, 0, 5, 10, 10, 5, 200, 0.1); err == nil {
		t.Error("expected an error for k out of bounds")
	}
	if err := Validate(0, 0, 0, 10, 10, 5, 3000, 0.1); err == nil {
		t.Error("expected an error for bhp out of [-100,2000]")
	}
	if err := Validate(0, 0, 0, 10, 10, 5, 200, 0); err == nil {
		t.Error("expected an error for non-positive wellbore radius")
	}
	if err := Validate(0, 0, 0, 10, 10, 5, math.NaN(), 0.1); err == nil {
		t.Error("expected an error for non-finite bhp")
	}
}

func TestPeacemanPIIsotropic(t *testing.T) {
	pi := PeacemanPI(100, 100, 50, 50, 10, 0.1, 0, 1.0)
	if pi <= 0 {
		t.Fatalf("expected a positive PI, got %g", pi)
	}
}

func TestPeacemanPIZeroOnNonPositivePermeability(t *testing.T) {
	if pi := PeacemanPI(0, 100, 50, 50, 10, 0.1, 0, 1.0); pi != 0 {
		t.Errorf("expected 0 PI for zero permeability, got %g", pi)
	}
}

func TestEffectiveBHPFromRateProducer(t *testing.T) {
	bhp, clamped := EffectiveBHPFromRate(10, 200, 50, false, -100, 2000)
	want := 200 - 50.0/10
	if math.Abs(bhp-want) > tolWl {
		t.Errorf("producer bhp = %g, want %g", bhp, want)
	}
	if clamped {
		t.Error("should not be clamped within range")
	}
}

func TestEffectiveBHPFromRateClampsAtLimit(t *testing.T) {
	bhp, clamped := EffectiveBHPFromRate(10, 200, 1e6, false, -100, 2000)
	if !clamped {
		t.Error("expected the rate inversion to hit the BHP floor")
	}
	if bhp != -100 {
		t.Errorf("clamped bhp = %g, want -100", bhp)
	}
}

func TestEffectiveBHPFromRateInjector(t *testing.T) {
	bhp, clamped := EffectiveBHPFromRate(10, 200, 50, true, -100, 2000)
	want := 200 + 50.0/10
	if math.Abs(bhp-want) > tolWl {
		t.Errorf("injector bhp = %g, want %g", bhp, want)
	}
	if clamped {
		t.Error("should not be clamped within range")
	}
}
