/*
 * geometric.go, part of goABFE
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

	"gonum.org/v1/gonum/floats"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

// Deg2Rad converts an angle in degrees to radians.
func Deg2Rad(f float64) float64 {
	return f * 0.0174533
}

// Rad2Deg converts an angle in radians to degrees.
func Rad2Deg(f float64) float64 {
	return f / 0.0174533
}

// sub returns the vector a-b. The arguments must be 3-vectors, no checks
// are performed.
func sub(a, b []float64) []float64 {
	r := make([]float64, 3)
	floats.SubTo(r, a, b)
	return r
}

// cross takes two 3-vectors and returns their cross product.
func cross(a, b []float64) []float64 {
	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Distance returns the distance between the points a and b.
func Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// Angle takes 2 vectors and calculates the angle in radians between them.
// It does not check for correctness or return errors!
func Angle(v1, v2 []float64) float64 {
	normproduct := floats.Norm(v1, 2) * floats.Norm(v2, 2)
	argument := floats.Dot(v1, v2) / normproduct
	//Take care of floating point math errors
	if math.Abs(argument-1) <= appzero {
		argument = 1
	} else if math.Abs(argument+1) <= appzero {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0.00
	}
	return angle
}

// AngleBetween returns the angle a-b-c, in radians, formed at the
// point b by the points a, b and c.
func AngleBetween(a, b, c []float64) float64 {
	return Angle(sub(a, b), sub(c, b))
}

// Dihedral calculates the dihedral between the points a, b, c, d, where the
// first plane is defined by abc and the second by bcd. The result is in
// radians, in the interval (-pi, pi].
func Dihedral(a, b, c, d []float64) float64 {
	all := [][]float64{a, b, c, d}
	for number, point := range all {
		if point == nil {
			panic(sf("abfe.Dihedral: vector %d is nil", number))
		}
		if len(point) != 3 {
			panic(sf("abfe.Dihedral: vector %d has invalid shape", number))
		}
	}
	bma := sub(b, a)
	cmb := sub(c, b)
	dmc := sub(d, c)
	bmascaled := make([]float64, 3)
	floats.ScaleTo(bmascaled, floats.Norm(cmb, 2), bma)
	first := floats.Dot(bmascaled, cross(cmb, dmc))
	second := floats.Dot(cross(bma, cmb), cross(cmb, dmc))
	return math.Atan2(first, second)
}
