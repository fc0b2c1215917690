/*
 * top_test.go, part of goABFE
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

package top

import (
	"bufio"
	"bytes"
	"math"
	"strings"
	"testing"
)

const proteinTop = `;; generated by pdb2gmx
#include "amber99sb.ff/forcefield.itp"

[ moleculetype ]
; Name            nrexcl
Protein             3

[ atoms ]
;   nr       type  resnr residue  atom   cgnr     charge       mass
     1         N3      1    ALA      N      1    -0.3000     14.010
     2         CT      1    ALA     CA      2     0.1000     12.010
     3          C      1    ALA      C      3     0.6000     12.010
     4          O      1    ALA      O      4    -0.5700     16.000
     5         CT      1    ALA     CB      5    -0.1800     12.010
     6          N      2    GLY      N      6    -0.4000     14.010
     7         CT      2    GLY     CA      7     0.0200     12.010
     8          C      2    GLY      C      8     0.6000     12.010

[ bonds ]
    1     2     1
    2     3     1

#ifdef POSRES
#include "posre.itp"
#endif

#include "amber99sb.ff/tip3p.itp"

#ifdef POSRES_WATER
[ position_restraints ]
   1    1       1000       1000       1000
#endif

#include "amber99sb.ff/ions.itp"

[ system ]
Protein in water

[ molecules ]
Protein             1
SOL               100
`

const ligandItp = `; ligand parameters
[ atomtypes ]
; name  at.num   mass     charge  ptype  sigma        epsilon
 lig_C      6   12.011    0.000     A    3.50000e-01  2.76144e-01
 lig_O      8   15.999    0.000     A    2.96000e-01  8.78640e-01
 lig_H      1    1.008    0.000     A    2.50000e-01  1.25520e-01

[ moleculetype ]
; Name  nrexcl
LIG     3

[ atoms ]
     1      lig_C      1    LIG     C1      1     0.1000    12.011
     2      lig_C      1    LIG     C2      2    -0.0500    12.011
     3      lig_C      1    LIG     C3      3     0.0000    12.011
     4      lig_O      1    LIG     O1      4    -0.4500    15.999
     5      lig_H      1    LIG     H1      5     0.4000     1.008

[ bonds ]
    1     2     1
    2     3     1
    2     4     1
    4     5     1
`

func parse(Te *testing.T, text string, itp bool) *Topology {
	T, err := Read(bufio.NewReader(strings.NewReader(text)), itp)
	if err != nil {
		Te.Fatal(err)
	}
	return T
}

func TestReadTop(Te *testing.T) {
	T := parse(Te, proteinTop, false)
	if T.Name() != "Protein" {
		Te.Errorf("got moleculetype %q", T.Name())
	}
	if T.ForceField() != "amber99sb" {
		Te.Errorf("got force field %q", T.ForceField())
	}
	if T.SystemName != "Protein in water" {
		Te.Errorf("got system name %q", T.SystemName)
	}
	if len(T.Molecules) != 2 || T.Molecules[0].Name != "Protein" || T.Molecules[1].Count != 100 {
		Te.Errorf("molecule list parsed wrong: %+v", T.Molecules)
	}
	masses, err := T.Masses()
	if err != nil {
		Te.Fatal(err)
	}
	if len(masses) != 8 || math.Abs(masses[0]-14.010) > 1e-9 {
		Te.Errorf("masses parsed wrong: %v", masses)
	}
	//the guarded posre include belongs to the protein block
	if !T.MolTypes[0].HasPosre {
		Te.Error("the posre include was not detected")
	}
	//the solvent and ion includes belong to the footer, not to the block
	footer := strings.Join(T.Footer, "\n")
	if !strings.Contains(footer, "tip3p.itp") || !strings.Contains(footer, "ions.itp") {
		Te.Errorf("solvent includes not in the footer: %q", footer)
	}
	block := strings.Join(T.MolTypes[0].lines, "\n")
	if strings.Contains(block, "tip3p.itp") {
		Te.Error("the solvent include leaked into the moleculetype block")
	}
	if !strings.Contains(block, "posre.itp") {
		Te.Error("the guarded posre include fell out of the moleculetype block")
	}
}

func TestReadItp(Te *testing.T) {
	T := parse(Te, ligandItp, true)
	if !T.IsITP {
		Te.Error("itp flag not set")
	}
	if T.Name() != "LIG" {
		Te.Errorf("got moleculetype %q", T.Name())
	}
	if len(T.AtomTypes) != 3 || T.AtomTypes[0].Name != "lig_C" {
		Te.Errorf("atomtypes parsed wrong: %+v", T.AtomTypes)
	}
	if len(T.MolTypes[0].Atoms) != 5 {
		Te.Errorf("got %d atoms", len(T.MolTypes[0].Atoms))
	}
	at := T.MolTypes[0].Atoms[3]
	if at.Name != "O1" || at.Type != "lig_O" || !at.HasMass || math.Abs(at.Mass-15.999) > 1e-9 {
		Te.Errorf("atom parsed wrong: %+v", at)
	}
}

func TestReadBadAtoms(Te *testing.T) {
	bad := "[ moleculetype ]\nLIG 3\n[ atoms ]\n 1 lig_C 1 LIG C1 1 notacharge\n"
	if _, err := Read(bufio.NewReader(strings.NewReader(bad)), true); err == nil {
		Te.Error("expected an error on a malformed atoms line")
	}
}

func TestMergeAtomTypes(Te *testing.T) {
	a := []*AtomType{{Name: "lig_C", Line: "lig_C from a"}, {Name: "lig_O", Line: "lig_O from a"}}
	b := []*AtomType{{Name: "lig_C", Line: "lig_C from b"}, {Name: "opls_1", Line: "opls_1 from b"}}
	m := MergeAtomTypes(a, b)
	if len(m) != 3 {
		Te.Fatalf("got %d merged types, want 3", len(m))
	}
	//on a conflict the earlier definition wins
	if m[0].Line != "lig_C from a" {
		Te.Errorf("conflict resolved wrong: %q", m[0].Line)
	}
	if m[2].Name != "opls_1" {
		Te.Errorf("order not preserved: %+v", m)
	}
}

func TestComplexAssembly(Te *testing.T) {
	pro := parse(Te, proteinTop, false)
	lig := parse(Te, ligandItp, true)
	com := pro.Copy()
	com.AddMoleculeInclude("ligand.itp")
	com.SystemName = "Complex"
	com.PrependMolecule(lig.Name(), 1)
	com.AtomTypes = MergeAtomTypes(lig.AtomTypes, pro.AtomTypes)
	com.SetIntermolecular("[ intermolecular_interactions ]\n[ bonds ]\n     6      1      6      0.300     0.0      0.300   4184.0\n")

	buf := new(bytes.Buffer)
	if err := com.Write(buf); err != nil {
		Te.Fatal(err)
	}
	out := buf.String()
	//gromacs needs the ligand include after the atomtypes and before the
	//protein moleculetype, and the restraint stanza at the very end
	order := []string{
		"[ atomtypes ]",
		"#include \"ligand.itp\"",
		"[ moleculetype ]",
		"[ system ]",
		"[ molecules ]",
		"[ intermolecular_interactions ]",
	}
	last := -1
	for _, s := range order {
		i := strings.Index(out, s)
		if i < 0 {
			Te.Fatalf("output lacks %q", s)
		}
		if i < last {
			Te.Fatalf("%q written out of order", s)
		}
		last = i
	}

	//a round trip must preserve the structure
	re := parse(Te, out, false)
	if !re.HasIntermolecular() {
		Te.Error("restraint stanza lost in the round trip")
	}
	if got, want := strings.Join(re.inter, "\n"), strings.Join(com.inter, "\n"); got != want {
		Te.Errorf("restraint stanza changed in the round trip:\ngot:\n%s\nwant:\n%s", got, want)
	}
	if len(re.MolIncludes) != 1 || !strings.Contains(re.MolIncludes[0], "ligand.itp") {
		Te.Errorf("ligand include misplaced in the round trip: %v", re.MolIncludes)
	}
	if len(re.Molecules) != 3 || re.Molecules[0].Name != "LIG" || re.Molecules[1].Name != "Protein" {
		Te.Errorf("molecule list changed in the round trip: %+v", re.Molecules)
	}
	if len(re.AtomTypes) != len(com.AtomTypes) {
		Te.Errorf("atomtypes changed in the round trip: %d vs %d", len(re.AtomTypes), len(com.AtomTypes))
	}
}

// A topology that already carries a restraint stanza, as the ones this
// package writes after a build, must survive a read/write cycle with the
// bond, angle and dihedral lines still inside the stanza.
func TestReadIntermolecular(Te *testing.T) {
	text := proteinTop + `
[ intermolecular_interactions ]
[ bonds ]
     6      1      6      0.456      0.0      0.456   4184.0
[ angles ]
     7      6      1      1      90.00      0.0      90.00     41.8
[ dihedrals ]
     8      7      6      1      2     -60.00      0.0     -60.00     41.8
`
	T := parse(Te, text, false)
	if !T.HasIntermolecular() {
		Te.Fatal("stanza not detected")
	}
	inter := strings.Join(T.inter, "\n")
	for _, s := range []string{"[ bonds ]", "0.456", "[ angles ]", "90.00", "[ dihedrals ]", "-60.00"} {
		if !strings.Contains(inter, s) {
			Te.Errorf("stanza lost %q: %q", s, inter)
		}
	}
	if f := strings.Join(T.Footer, "\n"); strings.Contains(f, "0.456") || strings.Contains(f, "[ bonds ]") {
		Te.Errorf("restraint lines leaked into the footer: %q", f)
	}
	buf := new(bytes.Buffer)
	if err := T.Write(buf); err != nil {
		Te.Fatal(err)
	}
	out := buf.String()
	//the rewritten stanza stays last, data lines included
	if strings.Index(out, "0.456") < strings.Index(out, "[ molecules ]") {
		Te.Error("restraint lines written before the molecule list")
	}
	re := parse(Te, out, false)
	if got, want := strings.Join(re.inter, "\n"), inter; got != want {
		Te.Errorf("second round trip changed the stanza:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestMakePosre(Te *testing.T) {
	lig := parse(Te, ligandItp, true)
	if lig.MolTypes[0].HasPosre {
		Te.Fatal("the input should carry no position restraints")
	}
	if err := lig.MakePosre(); err != nil {
		Te.Fatal(err)
	}
	if !lig.MolTypes[0].HasPosre {
		Te.Error("HasPosre not set")
	}
	//four heavy atoms, the hydrogen is skipped
	if n := len(lig.MolTypes[0].posre); n != 4 {
		Te.Errorf("got %d restrained atoms, want 4", n)
	}
	buf := new(bytes.Buffer)
	if err := lig.Write(buf); err != nil {
		Te.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "#ifdef POSRES") || !strings.Contains(out, "[ position_restraints ]") {
		Te.Error("position restraints not written under the POSRES guard")
	}
}

func TestToTop(Te *testing.T) {
	lig := parse(Te, ligandItp, true)
	lt := lig.Copy()
	if err := lt.ToTop(""); err == nil {
		Te.Error("expected an error without a force field")
	}
	if err := lt.ToTop("amber99sb"); err != nil {
		Te.Fatal(err)
	}
	if lt.IsITP {
		Te.Error("still marked as an itp")
	}
	if !strings.Contains(lt.Includes[0], "amber99sb.ff/forcefield.itp") {
		Te.Errorf("force field include missing: %v", lt.Includes)
	}
	if len(lt.Molecules) != 1 || lt.Molecules[0].Name != "LIG" || lt.Molecules[0].Count != 1 {
		Te.Errorf("molecule list: %+v", lt.Molecules)
	}
	buf := new(bytes.Buffer)
	if err := lt.Write(buf); err != nil {
		Te.Fatal(err)
	}
	out := buf.String()
	for _, s := range []string{"tip3p.itp", "ions.itp", "[ system ]", "[ molecules ]"} {
		if !strings.Contains(out, s) {
			Te.Errorf("standalone ligand topology lacks %q", s)
		}
	}
}

func TestCopyIndependence(Te *testing.T) {
	pro := parse(Te, proteinTop, false)
	cp := pro.Copy()
	cp.SystemName = "changed"
	cp.Molecules[0].Count = 99
	cp.MolTypes[0].Atoms[0].Name = "XX"
	cp.AddInclude("extra.itp")
	if pro.SystemName == "changed" || pro.Molecules[0].Count == 99 ||
		pro.MolTypes[0].Atoms[0].Name == "XX" || len(pro.Includes) == len(cp.Includes) {
		Te.Error("Copy shares state with the original")
	}
}
