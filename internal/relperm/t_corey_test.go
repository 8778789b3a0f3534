// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package relperm

import (
	"math"
	"testing"
)

const tolRp = 1e-9

func TestCoreyEndpoints(t *testing.T) {
	m, err := GetModel("corey")
	if err != nil {
		t.Fatal(err)
	}
	p := Params{Swc: 0.2, Sor: 0.2, Nw: 2, No: 2}
	if err := m.Init(p); err != nil {
		t.Fatal(err)
	}

	if krw := m.Krw(p.Swc); math.Abs(krw) > tolRp {
		t.Errorf("krw at Swc should be 0, got %g", krw)
	}
	if kro := m.Kro(1 - p.Sor); math.Abs(kro) > tolRp {
		t.Errorf("kro at 1-Sor should be 0, got %g", kro)
	}
	if krw := m.Krw(1 - p.Sor); math.Abs(krw-1) > tolRp {
		t.Errorf("krw at 1-Sor should be 1, got %g", krw)
	}
	if kro := m.Kro(p.Swc); math.Abs(kro-1) > tolRp {
		t.Errorf("kro at Swc should be 1, got %g", kro)
	}
}

func TestCoreyMonotonic(t *testing.T) {
	m, _ := GetModel("corey")
	m.Init(Params{Swc: 0.1, Sor: 0.1, Nw: 2, No: 3})

	prevKrw, prevKro := -1.0, 2.0
	for sw := 0.1; sw <= 0.9; sw += 0.1 {
		krw, kro := m.Krw(sw), m.Kro(sw)
		if krw < prevKrw-tolRp {
			t.Errorf("krw not monotonic at sw=%g", sw)
		}
		if kro > prevKro+tolRp {
			t.Errorf("kro not monotonic at sw=%g", sw)
		}
		prevKrw, prevKro = krw, kro
	}
}

func TestCoreyOutOfRangeClamped(t *testing.T) {
	m, _ := GetModel("corey")
	m.Init(Params{Swc: 0.2, Sor: 0.2, Nw: 2, No: 2})
	if krw := m.Krw(-1); krw != 0 {
		t.Errorf("krw below Swc should clamp to 0, got %g", krw)
	}
	if kro := m.Kro(2); kro != 0 {
		t.Errorf("kro above 1-Sor should clamp to 0, got %g", kro)
	}
}

func TestParamsValidate(t *testing.T) {
	cases := []struct {
		p    Params
		want bool
	}{
		{Params{Swc: 0.1, Sor: 0.1, Nw: 2, No: 2}, true},
		{Params{Swc: -0.1, Sor: 0.1, Nw: 2, No: 2}, false},
		{Params{Swc: 0.6, Sor: 0.5, Nw: 2, No: 2}, false},
		{Params{Swc: 0.1, Sor: 0.1, Nw: 0, No: 2}, false},
	}
	for _, c := range cases {
		err := c.p.Validate()
		if (err == nil) != c.want {
			t.Errorf("Validate(%+v) = %v, want ok=%v", c.p, err, c.want)
		}
	}
}

func TestGetModelUnknown(t *testing.T) {
	if _, err := GetModel("does-not-exist"); err == nil {
		t.Error("expected an error for an unregistered model name")
	}
}
