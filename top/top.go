/*
 * top.go, part of goABFE
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
	"fmt"
	"strconv"
	"strings"
)

var fi func(string) []string = strings.Fields
var sf func(string, ...any) string = fmt.Sprintf

// Returns a string without gromacs comments (sequences starting with ';'),
// trailing and leading spaces, tabs and newlines.
func cleanString(s string) string {
	f := strings.Split(s, ";")[0]
	return strings.Trim(f, "\n\t ")
}

// AtomType is one entry of an [ atomtypes ] section. Only the name is
// interpreted, the rest of the definition is carried verbatim.
type AtomType struct {
	Name string
	Line string
}

// Mol is one entry of the [ molecules ] list: a moleculetype name and how
// many copies of it the system contains.
type Mol struct {
	Name  string
	Count int
}

// TopAtom is one entry of the [ atoms ] section of a moleculetype.
type TopAtom struct {
	ID      int
	Type    string
	MolID   int
	MolName string
	Name    string
	Charge  float64
	Mass    float64
	HasMass bool
}

// MolType is one [ moleculetype ] block. The block is carried verbatim
// (bonded terms are never interpreted), with the [ atoms ] entries
// additionally parsed so masses and names are available.
type MolType struct {
	Name     string
	Atoms    []*TopAtom
	HasPosre bool
	lines    []string //the whole block, verbatim, starting at [ moleculetype ]
	posre    []string //generated position restraint lines, if any
}

// Topology is a Gromacs top or itp file: the include header, optional
// atomtypes, one or more moleculetype blocks, and (for top files) the
// footer includes, the system name, the molecule list and an optional
// intermolecular-interactions block.
type Topology struct {
	IsITP       bool
	SystemName  string
	Includes    []string //verbatim lines before the first moleculetype
	AtomTypes   []*AtomType
	MolIncludes []string //includes written after the atomtypes, before the moleculetype blocks
	MolTypes    []*MolType
	Molecules   []*Mol
	Footer      []string //verbatim lines after the moleculetype blocks
	inter       []string //intermolecular_interactions block, verbatim, with header
}

// Name returns the name of the first moleculetype in the topology, or an
// empty string if there is none.
func (T *Topology) Name() string {
	if len(T.MolTypes) == 0 {
		return ""
	}
	return T.MolTypes[0].Name
}

// Masses returns the mass of each atom of the first moleculetype, as given
// in its [ atoms ] section. It fails if any atom lacks an explicit mass.
func (T *Topology) Masses() ([]float64, error) {
	if len(T.MolTypes) == 0 {
		return nil, fmt.Errorf("top.Masses: topology has no moleculetype")
	}
	mt := T.MolTypes[0]
	masses := make([]float64, 0, len(mt.Atoms))
	for i, at := range mt.Atoms {
		if !at.HasMass {
			return nil, fmt.Errorf("top.Masses: atom %d (%s) of %s has no mass", i+1, at.Name, mt.Name)
		}
		masses = append(masses, at.Mass)
	}
	return masses, nil
}

// Copy returns a deep copy of the topology.
func (T *Topology) Copy() *Topology {
	N := new(Topology)
	N.IsITP = T.IsITP
	N.SystemName = T.SystemName
	N.Includes = append([]string{}, T.Includes...)
	N.MolIncludes = append([]string{}, T.MolIncludes...)
	N.Footer = append([]string{}, T.Footer...)
	N.inter = append([]string{}, T.inter...)
	for _, at := range T.AtomTypes {
		c := *at
		N.AtomTypes = append(N.AtomTypes, &c)
	}
	for _, m := range T.Molecules {
		c := *m
		N.Molecules = append(N.Molecules, &c)
	}
	for _, mt := range T.MolTypes {
		c := new(MolType)
		c.Name = mt.Name
		c.HasPosre = mt.HasPosre
		c.lines = append([]string{}, mt.lines...)
		c.posre = append([]string{}, mt.posre...)
		for _, a := range mt.Atoms {
			ac := *a
			c.Atoms = append(c.Atoms, &ac)
		}
		N.MolTypes = append(N.MolTypes, c)
	}
	return N
}

// AddInclude appends an #include directive for the given file name to the
// topology's header.
func (T *Topology) AddInclude(fname string) {
	T.Includes = append(T.Includes, sf("#include \"%s\"", fname))
}

// AddMoleculeInclude appends an #include directive for a file that defines
// a moleculetype (e.g. a ligand itp). It is written after the atomtypes
// and before the moleculetype blocks, so any types the included molecule
// needs are already defined when Gromacs reads it.
func (T *Topology) AddMoleculeInclude(fname string) {
	T.MolIncludes = append(T.MolIncludes, sf("#include \"%s\"", fname))
}

// ForceField returns the base name of the force field declared in the
// include header (e.g. "amber99sb" for amber99sb.ff/forcefield.itp), or an
// empty string if none is declared.
func (T *Topology) ForceField() string {
	for _, l := range T.Includes {
		c := cleanString(l)
		if !strings.HasPrefix(c, "#include") {
			continue
		}
		f := fi(c)
		name := strings.Trim(f[len(f)-1], "\"'")
		if i := strings.Index(name, ".ff/"); i > 0 {
			return name[:i]
		}
	}
	return ""
}

// PrependMolecule inserts the given entry at the head of the
// [ molecules ] list.
func (T *Topology) PrependMolecule(name string, count int) {
	T.Molecules = append([]*Mol{{Name: name, Count: count}}, T.Molecules...)
}

// MergeAtomTypes returns the union of the two atom type lists, keyed by
// type name. Order is preserved, and on a name conflict the earlier
// definition wins: a type in b never overrides one already given in a.
func MergeAtomTypes(a, b []*AtomType) []*AtomType {
	seen := make(map[string]bool, len(a)+len(b))
	ret := make([]*AtomType, 0, len(a)+len(b))
	for _, l := range [][]*AtomType{a, b} {
		for _, at := range l {
			if seen[at.Name] {
				continue
			}
			seen[at.Name] = true
			c := *at
			ret = append(ret, &c)
		}
	}
	return ret
}

// SetIntermolecular stores the given [ intermolecular_interactions ] block
// (header included) to be written at the very end of the file, after the
// molecule list.
func (T *Topology) SetIntermolecular(block string) {
	T.inter = T.inter[:0]
	for _, l := range strings.Split(block, "\n") {
		if strings.Trim(l, " \t") == "" {
			continue
		}
		T.inter = append(T.inter, l)
	}
}

// ClearIntermolecular removes the intermolecular-interactions block, if any.
func (T *Topology) ClearIntermolecular() {
	T.inter = nil
}

// HasIntermolecular returns whether the topology carries an
// intermolecular-interactions block.
func (T *Topology) HasIntermolecular() bool {
	return len(T.inter) > 0
}

// MakePosre generates position restraints for the heavy atoms of the first
// moleculetype, to be written inside an #ifdef POSRES guard. The force
// constant is in kJ mol^-1 nm^-2 and defaults to 1000 if not given.
// Atoms are considered heavy when their mass exceeds that of hydrogen, or,
// if masses are not given, when their name does not start with a digit
// or an 'H'.
func (T *Topology) MakePosre(kposre ...float64) error {
	if len(T.MolTypes) == 0 {
		return fmt.Errorf("top.MakePosre: topology has no moleculetype")
	}
	k := 1000.0
	if len(kposre) > 0 && kposre[0] > 0 {
		k = kposre[0]
	}
	mt := T.MolTypes[0]
	mt.posre = mt.posre[:0]
	for _, at := range mt.Atoms {
		if at.HasMass && at.Mass < 1.1 {
			continue
		}
		if !at.HasMass && (at.Name == "" || at.Name[0] == 'H' || (at.Name[0] >= '0' && at.Name[0] <= '9')) {
			continue
		}
		mt.posre = append(mt.posre, sf("%6d     1  %6.0f  %6.0f  %6.0f", at.ID, k, k, k))
	}
	if len(mt.posre) == 0 {
		return fmt.Errorf("top.MakePosre: no heavy atoms found in %s", mt.Name)
	}
	mt.HasPosre = true
	return nil
}

// atomFromLine parses one [ atoms ] line of a moleculetype:
// nr type resnr residue atom cgnr charge [mass].
func atomFromLine(s string) (*TopAtom, error) {
	l := fi(s)
	if len(l) < 7 {
		return nil, fmt.Errorf("atom line has %d fields, want at least 7: %q", len(l), s)
	}
	at := new(TopAtom)
	var err error
	if at.ID, err = strconv.Atoi(l[0]); err != nil {
		return nil, fmt.Errorf("bad atom number in %q: %w", s, err)
	}
	at.Type = l[1]
	if at.MolID, err = strconv.Atoi(l[2]); err != nil {
		return nil, fmt.Errorf("bad residue number in %q: %w", s, err)
	}
	at.MolName = l[3]
	at.Name = l[4]
	if at.Charge, err = strconv.ParseFloat(l[6], 64); err != nil {
		return nil, fmt.Errorf("bad charge in %q: %w", s, err)
	}
	if len(l) >= 8 {
		if at.Mass, err = strconv.ParseFloat(l[7], 64); err != nil {
			return nil, fmt.Errorf("bad mass in %q: %w", s, err)
		}
		at.HasMass = true
	}
	return at, nil
}
