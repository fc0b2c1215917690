/*
 * symbols.go, part of goABFE
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

import "fmt"

// A map for assigning mass to elements.
// Note that just common "bio-elements" are present.
var symbolMass = map[string]float64{
	"H":  1.008,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"Se": 78.96,
	"K":  39.1,
	"Ca": 40.08,
	"Mg": 24.30,
	"Cl": 35.45,
	"F":  19.00,
	"Br": 79.90,
	"I":  126.90,
	"Na": 22.99,
	"Cu": 63.55,
	"Zn": 65.38,
	"Co": 58.93,
	"Fe": 55.84,
	"Mn": 54.94,
}

// symbolFromName tries to guess a chemical element symbol from an atom name,
// as found in GRO/PDB files. Mostly based on Amber/Gromacs names. It only
// deals with some common bio-elements.
func symbolFromName(name string) (string, error) {
	symbol := ""
	if name == "" {
		return "", fmt.Errorf("empty atom name")
	}
	if len(name) == 4 || name[0] == 'H' || (name[0] >= '0' && name[0] <= '9') {
		symbol = "H" //I thiiink only Hs can have 4-char or digit-first names.
	} else {
		switch name[0] {
		case 'C':
			switch name {
			case "CU":
				symbol = "Cu"
			case "CO":
				symbol = "Co"
			case "CL", "CLA":
				symbol = "Cl"
			case "CA2":
				symbol = "Ca"
			default:
				symbol = "C"
			}
		case 'N':
			if name == "NA" {
				symbol = "Na"
			} else {
				symbol = "N"
			}
		case 'O':
			symbol = "O"
		case 'P':
			symbol = "P"
		case 'S':
			if name == "SE" {
				symbol = "Se"
			} else {
				symbol = "S"
			}
		case 'F':
			if name == "FE" {
				symbol = "Fe"
			} else {
				symbol = "F"
			}
		case 'B':
			if name == "BR" {
				symbol = "Br"
			}
		case 'I':
			symbol = "I"
		case 'Z':
			if len(name) >= 2 && name[0:2] == "ZN" {
				symbol = "Zn"
			}
		case 'M':
			if name == "MG" {
				symbol = "Mg"
			} else if name == "MN" {
				symbol = "Mn"
			}
		case 'K':
			symbol = "K"
		}
	}
	if symbol == "" {
		return symbol, fmt.Errorf("couldn't guess an element from the atom name %q", name)
	}
	return symbol, nil
}
