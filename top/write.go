/*
 * write.go, part of goABFE
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
	"fmt"
	"io"
	"os"
)

// Write writes the topology to w. For itp topologies only the atomtypes
// (if requested) and the moleculetype blocks are written; top files also
// get the footer, system, molecules and intermolecular sections. If
// writeAtypes is given and false, the [ atomtypes ] section is omitted
// (used for a ligand itp whose types were merged into the system topology).
func (T *Topology) Write(w io.Writer, writeAtypes ...bool) error {
	atypes := true
	if len(writeAtypes) > 0 {
		atypes = writeAtypes[0]
	}
	bw := bufio.NewWriter(w)
	for _, l := range T.Includes {
		fmt.Fprintln(bw, l)
	}
	if atypes && len(T.AtomTypes) > 0 {
		fmt.Fprintln(bw, "\n[ atomtypes ]")
		for _, at := range T.AtomTypes {
			fmt.Fprintln(bw, at.Line)
		}
	}
	if len(T.MolIncludes) > 0 {
		fmt.Fprintln(bw)
		for _, l := range T.MolIncludes {
			fmt.Fprintln(bw, l)
		}
	}
	for _, mt := range T.MolTypes {
		fmt.Fprintln(bw)
		for _, l := range mt.lines {
			fmt.Fprintln(bw, l)
		}
		if len(mt.posre) > 0 {
			fmt.Fprintln(bw, "\n#ifdef POSRES")
			fmt.Fprintln(bw, "[ position_restraints ]")
			for _, l := range mt.posre {
				fmt.Fprintln(bw, l)
			}
			fmt.Fprintln(bw, "#endif")
		}
	}
	if !T.IsITP {
		if len(T.Footer) > 0 {
			fmt.Fprintln(bw)
			for _, l := range T.Footer {
				fmt.Fprintln(bw, l)
			}
		}
		name := T.SystemName
		if name == "" {
			name = "System"
		}
		fmt.Fprintf(bw, "\n[ system ]\n%s\n", name)
		fmt.Fprintln(bw, "\n[ molecules ]")
		for _, m := range T.Molecules {
			fmt.Fprintf(bw, "%-20s %6d\n", m.Name, m.Count)
		}
		if len(T.inter) > 0 {
			fmt.Fprintln(bw)
			for _, l := range T.inter {
				fmt.Fprintln(bw, l)
			}
		}
	}
	return bw.Flush()
}

// FileWrite writes the topology to the file with the given name,
// overwriting it if present.
func (T *Topology) FileWrite(name string, writeAtypes ...bool) error {
	fout, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("top.FileWrite: %w", err)
	}
	defer fout.Close()
	if err := T.Write(fout, writeAtypes...); err != nil {
		return fmt.Errorf("top.FileWrite: %s: %w", name, err)
	}
	return nil
}

// SolventFooter returns the include lines that turn a ligand itp into a
// standalone top: the water model and ions of the given force field, plus
// a water position-restraint guard. The same force field used for the
// protein should be given, so water and ions match between the legs.
func SolventFooter(forcefield string) []string {
	return []string{
		sf("#include \"%s.ff/tip3p.itp\"", forcefield),
		"#ifdef POSRES_WATER",
		"[ position_restraints ]",
		"1    1       1000       1000       1000",
		"#endif",
		sf("#include \"%s.ff/ions.itp\"", forcefield),
	}
}

// ToTop converts an include topology (itp) read from a ligand into a
// standalone system topology: the force-field include goes first, the
// solvent/ions footer is appended, and the system name and molecule list
// are set to the single ligand moleculetype.
func (T *Topology) ToTop(forcefield string) error {
	if len(T.MolTypes) == 0 {
		return fmt.Errorf("top.ToTop: topology has no moleculetype")
	}
	if forcefield == "" {
		return fmt.Errorf("top.ToTop: no force field given")
	}
	T.IsITP = false
	T.Includes = append([]string{sf("#include \"%s.ff/forcefield.itp\"", forcefield)}, T.Includes...)
	T.Footer = SolventFooter(forcefield)
	T.SystemName = T.Name()
	T.Molecules = []*Mol{{Name: T.Name(), Count: 1}}
	return nil
}
