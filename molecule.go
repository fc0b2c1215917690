/*
 * molecule.go, part of goABFE
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
	"fmt"

	"gonum.org/v1/gonum/mat"
)

/*Note: Several functions here panic instead of returning errors. They are
 * "fundamental" functions, so, if something goes wrong in them, the program is
 * way-most likely wrong and should crash. The panics are related to calling
 * a method on a nil object or accessing out-of-bounds fields.*/

// Atom contains the data for one atom, except for the coordinates,
// which are kept in a matrix in the Molecule.
type Atom struct {
	Name    string
	ID      int
	MolID   int
	MolName string
	Symbol  string
	Mass    float64
	Charge  float64
}

// Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("abfe: attempted to copy a nil Atom")
	}
	newat := new(Atom)
	*newat = *A
	return newat
}

// Molecule contains a set of atoms, their coordinates (an Nx3 matrix, in nm)
// and the periodic box, if any (3 lengths, or 9 values for a triclinic box,
// Gromacs order).
type Molecule struct {
	Atoms  []*Atom
	Coords *mat.Dense
	Box    []float64
	Title  string
}

// NewMolecule returns a Molecule with the given atoms and coordinates.
// It fails if either slice is nil or if their sizes don't match.
func NewMolecule(atoms []*Atom, coords *mat.Dense) (*Molecule, error) {
	if atoms == nil {
		return nil, fmt.Errorf("abfe.NewMolecule: nil atoms")
	}
	if coords == nil {
		return nil, fmt.Errorf("abfe.NewMolecule: nil coordinates")
	}
	r, c := coords.Dims()
	if r != len(atoms) || c != 3 {
		return nil, fmt.Errorf("abfe.NewMolecule: %d atoms but a %dx%d coordinate matrix", len(atoms), r, c)
	}
	M := new(Molecule)
	M.Atoms = atoms
	M.Coords = coords
	return M, nil
}

// Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int {
	return len(M.Atoms)
}

// Atom returns the Atom corresponding to the index i of the Atom slice
// in the molecule. Panics if out of range.
func (M *Molecule) Atom(i int) *Atom {
	if i >= M.Len() {
		panic("abfe: requested Atom out of bounds")
	}
	return M.Atoms[i]
}

// Coord returns a view of the coordinates for the ith atom.
// Panics if out of range.
func (M *Molecule) Coord(i int) []float64 {
	if i >= M.Len() {
		panic("abfe: requested coordinate out of bounds")
	}
	return M.Coords.RawRowView(i)
}

// Copy returns a deep copy of the molecule, including coordinates and box.
func (M *Molecule) Copy() *Molecule {
	mol := new(Molecule)
	mol.Title = M.Title
	mol.Atoms = make([]*Atom, M.Len())
	for i, v := range M.Atoms {
		mol.Atoms[i] = v.Copy()
	}
	mol.Coords = mat.DenseCopyOf(M.Coords)
	if M.Box != nil {
		mol.Box = make([]float64, len(M.Box))
		copy(mol.Box, M.Box)
	}
	return mol
}

// Residue is a named, numbered group of consecutive atoms in a molecule.
type Residue struct {
	Name  string
	ID    int
	Atoms []int //indexes into the molecule
}

// Residues groups the atoms of the molecule into residues, in order of
// appearance. A new residue starts whenever the MolID changes between
// consecutive atoms.
func (M *Molecule) Residues() []*Residue {
	ret := make([]*Residue, 0, 1)
	var cur *Residue
	for i, at := range M.Atoms {
		if cur == nil || cur.ID != at.MolID {
			cur = &Residue{Name: at.MolName, ID: at.MolID}
			ret = append(ret, cur)
		}
		cur.Atoms = append(cur.Atoms, i)
	}
	return ret
}

// RenumberAtoms sets the ID of every atom to its current 1-based position
// in the molecule.
func (M *Molecule) RenumberAtoms() {
	for i, at := range M.Atoms {
		at.ID = i + 1
	}
}

// RenumberResidues renumbers the MolID of every atom so residues are
// numbered 1..N in order of appearance.
func (M *Molecule) RenumberResidues() {
	cur := 0
	prev := -1 << 62
	for _, at := range M.Atoms {
		if at.MolID != prev {
			prev = at.MolID
			cur++
		}
		at.MolID = cur
	}
}

// Masses returns a slice with the mass of each atom, or an error if any
// mass is missing.
func (M *Molecule) Masses() ([]float64, error) {
	mass := make([]float64, M.Len())
	for i := 0; i < M.Len(); i++ {
		at := M.Atom(i)
		if at.Mass <= 0 {
			return nil, fmt.Errorf("abfe.Masses: no mass for atom %d (%s)", i, at.Name)
		}
		mass[i] = at.Mass
	}
	return mass, nil
}

// COM returns the mass-weighted center of the molecule. It requires all
// masses to be assigned.
func (M *Molecule) COM() ([]float64, error) {
	masses, err := M.Masses()
	if err != nil {
		return nil, fmt.Errorf("abfe.COM: %w", err)
	}
	com := make([]float64, 3)
	var total float64
	for i, m := range masses {
		c := M.Coord(i)
		for j := 0; j < 3; j++ {
			com[j] += c[j] * m
		}
		total += m
	}
	for j := 0; j < 3; j++ {
		com[j] /= total
	}
	return com, nil
}

// Merge joins the ligand and the protein into a single molecule, with the
// ligand atoms first. The merged molecule takes the protein's box and its
// atom IDs are renumbered 1..N contiguously. The input molecules are not
// modified.
func Merge(lig, pro *Molecule) (*Molecule, error) {
	if lig == nil || pro == nil {
		return nil, fmt.Errorf("abfe.Merge: nil molecule given")
	}
	atoms := make([]*Atom, 0, lig.Len()+pro.Len())
	maxlig := 0
	for _, v := range lig.Atoms {
		if v.MolID > maxlig {
			maxlig = v.MolID
		}
		atoms = append(atoms, v.Copy())
	}
	//both inputs number their residues from 1, so the protein residues are
	//shifted to keep the junction visible to the renumbering below
	for _, v := range pro.Atoms {
		c := v.Copy()
		c.MolID += maxlig
		atoms = append(atoms, c)
	}
	data := make([]float64, 0, 3*(lig.Len()+pro.Len()))
	data = append(data, lig.Coords.RawMatrix().Data...)
	data = append(data, pro.Coords.RawMatrix().Data...)
	com, err := NewMolecule(atoms, mat.NewDense(lig.Len()+pro.Len(), 3, data))
	if err != nil {
		return nil, fmt.Errorf("abfe.Merge: %w", err)
	}
	com.Title = "Complex"
	if pro.Box != nil {
		com.Box = make([]float64, len(pro.Box))
		copy(com.Box, pro.Box)
	}
	com.RenumberAtoms()
	com.RenumberResidues()
	return com, nil
}

// AssignMasses sets the mass of each atom in the molecule from the given
// slice, which must have one entry per atom (e.g. as parsed from the
// [ atoms ] section of the molecule's topology).
func AssignMasses(M *Molecule, masses []float64) error {
	if len(masses) != M.Len() {
		return fmt.Errorf("abfe.AssignMasses: %d masses for %d atoms", len(masses), M.Len())
	}
	for i, m := range masses {
		M.Atom(i).Mass = m
	}
	return nil
}

// AssignMassesFromSymbols guesses the element of each atom from its name
// and sets the corresponding mass. It fails on the first atom whose element
// can't be guessed.
func AssignMassesFromSymbols(M *Molecule) error {
	for i := 0; i < M.Len(); i++ {
		at := M.Atom(i)
		sym, err := symbolFromName(at.Name)
		if err != nil {
			return fmt.Errorf("abfe.AssignMassesFromSymbols: atom %d: %w", i, err)
		}
		at.Symbol = sym
		at.Mass = symbolMass[sym]
	}
	return nil
}
