/*
 * gro.go, part of goABFE
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"gonum.org/v1/gonum/mat"
)

var fi func(string) []string = strings.Fields
var sf func(string, ...any) string = fmt.Sprintf

// GroRead reads a molecule in Gromacs GRO format from r. Velocities, if
// present, are discarded. Coordinates are kept in nm, as in the file.
func GroRead(r io.Reader) (*Molecule, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return nil, fmt.Errorf("abfe.GroRead: empty file")
	}
	title := scanner.Text()
	if !scanner.Scan() {
		return nil, fmt.Errorf("abfe.GroRead: missing atom count")
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, fmt.Errorf("abfe.GroRead: can't parse the number of atoms %q: %w", scanner.Text(), err)
	}
	atoms := make([]*Atom, 0, natoms)
	data := make([]float64, 0, 3*natoms)
	for i := 0; i < natoms; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("abfe.GroRead: file ends after %d of %d atoms", i, natoms)
		}
		at, xyz, err := groLine2Atom(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("abfe.GroRead: atom %d: %w", i+1, err)
		}
		atoms = append(atoms, at)
		data = append(data, xyz...)
	}
	mol, err := NewMolecule(atoms, mat.NewDense(natoms, 3, data))
	if err != nil {
		return nil, fmt.Errorf("abfe.GroRead: %w", err)
	}
	mol.Title = title
	if scanner.Scan() {
		box, err := parsefloats(fi(scanner.Text())...)
		if err != nil {
			return nil, fmt.Errorf("abfe.GroRead: can't parse the box line %q: %w", scanner.Text(), err)
		}
		if len(box) != 3 && len(box) != 9 {
			return nil, fmt.Errorf("abfe.GroRead: box line has %d values, want 3 or 9", len(box))
		}
		mol.Box = box
	}
	return mol, nil
}

// groLine2Atom parses one fixed-column GRO atom line. Velocity columns, if
// present, are ignored.
func groLine2Atom(line string) (at *Atom, xyz []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			at = nil
			err = fmt.Errorf("truncated line %q", line)
		}
	}()
	at = new(Atom)
	at.MolID, err = strconv.Atoi(strings.TrimSpace(line[0:5]))
	if err != nil {
		return nil, nil, fmt.Errorf("bad residue number in %q: %w", line, err)
	}
	at.MolName = strings.TrimSpace(line[5:10])
	at.Name = strings.TrimSpace(line[10:15])
	at.ID, err = strconv.Atoi(strings.TrimSpace(line[15:20]))
	if err != nil {
		return nil, nil, fmt.Errorf("bad atom number in %q: %w", line, err)
	}
	xyz = make([]float64, 3)
	for i := 0; i < 3; i++ {
		xyz[i], err = strconv.ParseFloat(strings.TrimSpace(line[20+8*i:28+8*i]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("bad coordinate in %q: %w", line, err)
		}
	}
	if s, errs := symbolFromName(at.Name); errs == nil {
		at.Symbol = s //a missing symbol is not an error here, masses can still come from a topology
	}
	return at, xyz, nil
}

// GroFileRead reads the GRO file with the given name. Files ending in .gz
// are transparently decompressed.
func GroFileRead(name string) (*Molecule, error) {
	fin, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("abfe.GroFileRead: %w", err)
	}
	defer fin.Close()
	var r io.Reader = fin
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(fin)
		if err != nil {
			return nil, fmt.Errorf("abfe.GroFileRead: %s: %w", name, err)
		}
		defer gz.Close()
		r = gz
	}
	mol, err := GroRead(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("abfe.GroFileRead: %s: %w", name, err)
	}
	return mol, nil
}

// GroWrite writes the molecule to w in GRO format. Residue and atom
// numbers are written modulo the format's column widths, as Gromacs does.
func GroWrite(w io.Writer, mol *Molecule) error {
	if mol == nil {
		return fmt.Errorf("abfe.GroWrite: nil molecule")
	}
	title := mol.Title
	if title == "" {
		title = "Written by goABFE"
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%5d\n", title, mol.Len())
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		c := mol.Coord(i)
		fmt.Fprintf(bw, "%5d%-5s%5s%5d%8.3f%8.3f%8.3f\n",
			at.MolID%100000, at.MolName, at.Name, at.ID%100000, c[0], c[1], c[2])
	}
	box := mol.Box
	if box == nil {
		box = []float64{0, 0, 0}
	}
	for i, v := range box {
		if i > 0 {
			fmt.Fprint(bw, " ")
		}
		fmt.Fprintf(bw, "%10.5f", v)
	}
	fmt.Fprint(bw, "\n")
	return bw.Flush()
}

// GroFileWrite writes the molecule to a GRO file with the given name.
func GroFileWrite(name string, mol *Molecule) error {
	fout, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("abfe.GroFileWrite: %w", err)
	}
	defer fout.Close()
	if err := GroWrite(fout, mol); err != nil {
		return fmt.Errorf("abfe.GroFileWrite: %s: %w", name, err)
	}
	return nil
}

func parsefloats(s ...string) ([]float64, error) {
	r := make([]float64, 0, len(s))
	for _, v := range s {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		r = append(r, f)
	}
	return r, nil
}
