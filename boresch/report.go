/*
 * report.go, part of goABFE
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

package boresch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// TopBlock returns the restraint as a Gromacs intermolecular-interactions
// stanza, ready to be appended to the complex topology. Atom numbers are
// 1-based indexes into the merged complex (ligand first). State A carries
// no force constant and state B the full one, so the restraint is switched
// on along the alchemical path.
func (R *Restraints) TopBlock() string {
	pro, lig := R.ComplexIDs()
	b := new(strings.Builder)
	fmt.Fprintln(b, "[ intermolecular_interactions ]")
	fmt.Fprintln(b, "[ bonds ]")
	fmt.Fprintln(b, "; ai     aj    type   bA      kA     bB      kB")
	fmt.Fprintf(b, "%6d %6d %6d %10.3f %10.1f %10.3f %10.1f\n",
		pro[0], lig[0], 6, R.Dist, 0.0, R.Dist, R.kbond)
	fmt.Fprintln(b, "[ angles ]")
	fmt.Fprintln(b, "; ai     aj     ak    type    thA     kA     thB     kB")
	fmt.Fprintf(b, "%6d %6d %6d %6d %10.2f %10.1f %10.2f %10.1f\n",
		pro[1], pro[0], lig[0], 1, R.Angles[0], 0.0, R.Angles[0], R.kangle)
	fmt.Fprintf(b, "%6d %6d %6d %6d %10.2f %10.1f %10.2f %10.1f\n",
		pro[0], lig[0], lig[1], 1, R.Angles[1], 0.0, R.Angles[1], R.kangle)
	fmt.Fprintln(b, "[ dihedrals ]")
	fmt.Fprintln(b, "; ai     aj     ak     al    type    phiA    kA      phiB    kB")
	quad := [3][4]int{
		{pro[2], pro[1], pro[0], lig[0]},
		{pro[1], pro[0], lig[0], lig[1]},
		{pro[0], lig[0], lig[1], lig[2]},
	}
	for i, q := range quad {
		fmt.Fprintf(b, "%6d %6d %6d %6d %6d %10.2f %10.1f %10.2f %10.1f\n",
			q[0], q[1], q[2], q[3], 2, R.Dihedrals[i], 0.0, R.Dihedrals[i], R.kdihedral)
	}
	return b.String()
}

// WriteSummary writes a human-readable description of the restraint to w:
// the six anchor atoms, the reference values with their force constants,
// the seed used, the spread of the candidate protein anchors considered,
// and the analytic standard-state correction at the given temperature
// (298.15 K if none is given).
func (R *Restraints) WriteSummary(w io.Writer, temp ...float64) error {
	t := 298.15
	if len(temp) > 0 && temp[0] > 0 {
		t = temp[0]
	}
	pro, lig := R.ComplexIDs()
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "Boresch restraint summary")
	fmt.Fprintln(bw, "-------------------------")
	fmt.Fprintf(bw, "Random seed: %d\n", R.seed)
	fmt.Fprintf(bw, "Ligand anchors  (complex index/name): %d/%s %d/%s %d/%s\n",
		lig[0], R.LigNames[0], lig[1], R.LigNames[1], lig[2], R.LigNames[2])
	fmt.Fprintf(bw, "Protein anchors (complex index/name): %d/%s %d/%s %d/%s\n",
		pro[0], R.ProNames[0], pro[1], R.ProNames[1], pro[2], R.ProNames[2])
	fmt.Fprintf(bw, "Distance  P1-L1:          %8.3f nm   (k = %8.1f kJ mol^-1 nm^-2)\n", R.Dist, R.kbond)
	fmt.Fprintf(bw, "Angle     P2-P1-L1:       %8.2f deg  (k = %8.2f kJ mol^-1 rad^-2)\n", R.Angles[0], R.kangle)
	fmt.Fprintf(bw, "Angle     P1-L1-L2:       %8.2f deg  (k = %8.2f kJ mol^-1 rad^-2)\n", R.Angles[1], R.kangle)
	fmt.Fprintf(bw, "Dihedral  P3-P2-P1-L1:    %8.2f deg  (k = %8.2f kJ mol^-1 rad^-2)\n", R.Dihedrals[0], R.kdihedral)
	fmt.Fprintf(bw, "Dihedral  P2-P1-L1-L2:    %8.2f deg  (k = %8.2f kJ mol^-1 rad^-2)\n", R.Dihedrals[1], R.kdihedral)
	fmt.Fprintf(bw, "Dihedral  P1-L1-L2-L3:    %8.2f deg  (k = %8.2f kJ mol^-1 rad^-2)\n", R.Dihedrals[2], R.kdihedral)
	if len(R.candidate) > 0 {
		mean, std := stat.MeanStdDev(R.candidate, nil)
		fmt.Fprintf(bw, "Protein anchor candidates considered: %d (distance to L1 %.3f +/- %.3f nm)\n",
			len(R.candidate), mean, std)
	}
	fmt.Fprintf(bw, "Restraint release dG at %.2f K: %8.2f kJ/mol\n", t, R.DG(t))
	return bw.Flush()
}

// SummaryFile writes the summary of WriteSummary to the file with the
// given name.
func (R *Restraints) SummaryFile(name string, temp ...float64) error {
	fout, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("boresch.SummaryFile: %w", err)
	}
	defer fout.Close()
	if err := R.WriteSummary(fout, temp...); err != nil {
		return fmt.Errorf("boresch.SummaryFile: %s: %w", name, err)
	}
	return nil
}
