/*
 * molecule_test.go, part of goABFE
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
	"strings"
	"testing"
)

func readOrDie(Te *testing.T, gro string) *Molecule {
	mol, err := GroRead(strings.NewReader(gro))
	if err != nil {
		Te.Fatal(err)
	}
	return mol
}

func TestResidues(Te *testing.T) {
	pro := readOrDie(Te, proteinGro)
	res := pro.Residues()
	if len(res) != 2 {
		Te.Fatalf("got %d residues, want 2", len(res))
	}
	if res[0].Name != "ALA" || res[1].Name != "GLY" {
		Te.Errorf("residue names: %s, %s", res[0].Name, res[1].Name)
	}
	if len(res[0].Atoms) != 5 || len(res[1].Atoms) != 3 {
		Te.Errorf("residue sizes: %d, %d", len(res[0].Atoms), len(res[1].Atoms))
	}
	lig := readOrDie(Te, ligandGro)
	if r := lig.Residues(); len(r) != 1 {
		Te.Errorf("the ligand should be a single residue, got %d", len(r))
	}
}

func TestMerge(Te *testing.T) {
	lig := readOrDie(Te, ligandGro)
	pro := readOrDie(Te, proteinGro)
	com, err := Merge(lig, pro)
	if err != nil {
		Te.Fatal(err)
	}
	if com.Len() != lig.Len()+pro.Len() {
		Te.Fatalf("merged %d+%d atoms into %d", lig.Len(), pro.Len(), com.Len())
	}
	//ligand atoms come first and numbering is contiguous
	if com.Atom(0).MolName != "LIG" || com.Atom(5).MolName != "ALA" {
		Te.Errorf("merge order wrong: %s, %s", com.Atom(0).MolName, com.Atom(5).MolName)
	}
	for i := 0; i < com.Len(); i++ {
		if com.Atom(i).ID != i+1 {
			Te.Errorf("atom %d has ID %d after renumbering", i, com.Atom(i).ID)
		}
	}
	res := com.Residues()
	if len(res) != 3 {
		Te.Fatalf("complex has %d residues, want 3", len(res))
	}
	for i, r := range res {
		if r.ID != i+1 {
			Te.Errorf("residue %d has ID %d after renumbering", i, r.ID)
		}
	}
	//the complex takes the protein's box
	if len(com.Box) != 3 || math.Abs(com.Box[0]-3.0) > 1e-9 {
		Te.Errorf("complex box: %v", com.Box)
	}
	c := com.Coord(0)
	if math.Abs(c[0]-0.5) > 1e-9 {
		Te.Errorf("ligand coordinates not first in the complex: %v", c)
	}
	//the inputs must not be touched
	if pro.Atom(0).ID != 1 || pro.Atom(0).MolID != 1 || lig.Atom(4).ID != 5 {
		Te.Error("Merge modified its inputs")
	}
}

func TestMassesAndCOM(Te *testing.T) {
	lig := readOrDie(Te, ligandGro)
	if _, err := lig.Masses(); err == nil {
		Te.Error("expected an error asking for unassigned masses")
	}
	if err := AssignMassesFromSymbols(lig); err != nil {
		Te.Fatal(err)
	}
	masses, err := lig.Masses()
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(masses[0]-12.01) > 1e-9 || math.Abs(masses[4]-1.008) > 1e-9 {
		Te.Errorf("masses assigned wrong: %v", masses)
	}
	com, err := lig.COM()
	if err != nil {
		Te.Fatal(err)
	}
	//the center of mass must fall inside the molecule
	if com[0] < 0.45 || com[0] > 0.70 || com[1] < 0.43 || com[1] > 0.62 {
		Te.Errorf("suspicious center of mass: %v", com)
	}
}

func TestAssignMasses(Te *testing.T) {
	lig := readOrDie(Te, ligandGro)
	if err := AssignMasses(lig, []float64{1, 2}); err == nil {
		Te.Error("expected an error on a mass/atom count mismatch")
	}
	m := []float64{12.011, 12.011, 12.011, 15.999, 1.008}
	if err := AssignMasses(lig, m); err != nil {
		Te.Fatal(err)
	}
	if lig.Atom(3).Mass != 15.999 {
		Te.Errorf("mass not assigned: %f", lig.Atom(3).Mass)
	}
}

func TestCopyIsDeep(Te *testing.T) {
	lig := readOrDie(Te, ligandGro)
	cp := lig.Copy()
	cp.Atom(0).Name = "XX"
	cp.Coords.Set(0, 0, 9.9)
	cp.Box[0] = 7.0
	if lig.Atom(0).Name == "XX" || lig.Coord(0)[0] == 9.9 || lig.Box[0] == 7.0 {
		Te.Error("Copy shares state with the original")
	}
}
