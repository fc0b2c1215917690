/*
 * geometric_test.go, part of goABFE
 *
 * Copyright 2025 Raul Mera  <rmeraa{at}academicos(dot)uta(dot)cl>
 *
 *  This program is free software; you can redistribute it and/or modify
 *  it under the terms of the GNU Lesser General Public License as published by
 *  the Free Software Foundation; either version 3 of the License, or
 *  (at your option) any later version.
 *
 *  This program is distributed in the hope that it will be useful,
 *  but WITHOUT ANY WARRANTY; without even the implied warranty of
 *  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 *  GNU General Public License for more details.
 *
 *  You should have received a copy of the GNU General Public License along
 *  with this program; if not, write to the Free Software Foundation, Inc.,
 *  51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
 *
 */

package abfe

import (
	"math"
	"testing"
)

func TestDistance(Te *testing.T) {
	a := []float64{0, 0, 0}
	b := []float64{3, 4, 0}
	if d := Distance(a, b); math.Abs(d-5.0) > 1e-12 {
		Te.Errorf("Distance: got %f, want 5.0", d)
	}
}

func TestAngleBetween(Te *testing.T) {
	a := []float64{1, 0, 0}
	b := []float64{0, 0, 0}
	c := []float64{0, 1, 0}
	ang := Rad2Deg(AngleBetween(a, b, c))
	if math.Abs(ang-90.0) > 1e-3 {
		Te.Errorf("AngleBetween: got %f deg, want 90", ang)
	}
	//collinear points, the clamping should keep Acos from returning NaN
	d := []float64{2, 0, 0}
	ang = Rad2Deg(AngleBetween(a, b, d))
	if math.IsNaN(ang) || math.Abs(ang) > 1e-3 {
		Te.Errorf("AngleBetween collinear: got %f deg, want 0", ang)
	}
}

func TestDihedral(Te *testing.T) {
	a := []float64{0, 1, 0}
	b := []float64{0, 0, 0}
	c := []float64{1, 0, 0}
	//d perpendicular to the abc plane gives a 90 degree dihedral
	d := []float64{1, 0, 1}
	dih := Dihedral(a, b, c, d)
	if math.Abs(dih-math.Pi/2) > 1e-9 {
		Te.Errorf("Dihedral: got %f rad, want %f", dih, math.Pi/2)
	}
	//cis arrangement
	d = []float64{1, 1, 0}
	dih = Dihedral(a, b, c, d)
	if math.Abs(dih) > 1e-9 {
		Te.Errorf("Dihedral cis: got %f rad, want 0", dih)
	}
}

func TestDegRadRoundTrip(Te *testing.T) {
	for _, v := range []float64{0, 15.5, 90, 179.9} {
		if got := Rad2Deg(Deg2Rad(v)); math.Abs(got-v) > 1e-9 {
			Te.Errorf("Deg2Rad/Rad2Deg: %f became %f", v, got)
		}
	}
}
