/*
 * gmx.go, part of goABFE
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

//In order to use this package you need the Gromacs suite, which must be
//obtained from www.gromacs.org. Please cite the Gromacs references if you
//used the program.

//Package gmx drives the gmx binary for the system-building steps of a
//free-energy setup: box definition, solvation, preprocessing and ion
//placement. Each invocation checks the exit status, reports the tail of
//stderr on failure, and verifies that the declared output file actually
//appeared.
package gmx

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// The box types editconf accepts.
var BoxTypes = []string{"triclinic", "cubic", "dodecahedron", "octahedron"}

// ValidBoxType returns whether bt is a box type Gromacs understands.
func ValidBoxType(bt string) bool {
	for _, v := range BoxTypes {
		if v == bt {
			return true
		}
	}
	return false
}

// Runner invokes the gmx binary. The zero value is not usable, get one
// from NewRunner.
type Runner struct {
	command string
	maxwarn int
	verbose bool
}

// NewRunner returns a Runner with the defaults set.
func NewRunner() *Runner {
	R := new(Runner)
	R.SetDefaults()
	return R
}

// SetDefaults sets the runner to use the gmx binary found in the PATH and
// to tolerate one grompp warning (the merged complex topologies routinely
// trigger an atom-name mismatch note).
func (R *Runner) SetDefaults() {
	R.command = "gmx"
	R.maxwarn = 1
}

// Command returns the command used to invoke Gromacs.
func (R *Runner) Command() string {
	return R.command
}

// SetCommand sets the command used to invoke Gromacs (e.g. "gmx_mpi", or
// a full path).
func (R *Runner) SetCommand(name string) {
	R.command = name
}

// SetMaxWarn sets the number of warnings grompp is allowed to ignore.
func (R *Runner) SetMaxWarn(n int) {
	R.maxwarn = n
}

// SetVerbose makes the runner print each command line before running it.
func (R *Runner) SetVerbose(v bool) {
	R.verbose = v
}

// CheckFileReady checks that the file with the given name was successfully
// created, and gives an informative error, naming the file, if not.
func CheckFileReady(fname string) error {
	st, err := os.Stat(fname)
	if err != nil || st.IsDir() {
		return fmt.Errorf("gmx: failed creating %s", fname)
	}
	return nil
}

// run invokes one gmx subcommand. If stdin is not empty it is piped to the
// process (genion reads its solvent-group choice that way). After a clean
// exit the declared output file must exist.
func (R *Runner) run(stdin, outfile string, args ...string) error {
	if R.verbose {
		fmt.Println(R.command, strings.Join(args, " "))
	}
	cmd := exec.Command(R.command, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("gmx %s: %w: %s", args[0], err, lastLines(stderr.String(), 5))
	}
	return CheckFileReady(outfile)
}

// lastLines returns the last n non-empty lines of s, joined with " | ".
// Gromacs is chatty on stderr, the relevant message is at the end.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	kept := make([]string, 0, n)
	for i := len(lines) - 1; i >= 0 && len(kept) < n; i-- {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		kept = append([]string{strings.TrimSpace(lines[i])}, kept...)
	}
	return strings.Join(kept, " | ")
}

// Editconf puts the structure f in a box of the given type, with at least
// d nm between the solute and the box, writing the result to o.
func (R *Runner) Editconf(f, o, boxtype string, d float64) error {
	if !ValidBoxType(boxtype) {
		return fmt.Errorf("gmx.Editconf: invalid box type %q", boxtype)
	}
	return R.run("", o, "editconf", "-f", f, "-o", o, "-bt", boxtype,
		"-d", strconv.FormatFloat(d, 'f', -1, 64))
}

// Solvate fills the box of the structure cp with solvent from the library
// configuration cs (usually spc216.gro), writing the solvated structure
// to o and appending the solvent to the topology p.
func (R *Runner) Solvate(cp, cs, p, o string) error {
	return R.run("", o, "solvate", "-cp", cp, "-cs", cs, "-p", p, "-o", o)
}

// Grompp preprocesses the run: parameters f (mdp), structure c and
// topology p into the portable run file o (tpr).
func (R *Runner) Grompp(f, c, p, o string) error {
	return R.run("", o, "grompp", "-f", f, "-c", c, "-p", p, "-o", o,
		"-maxwarn", strconv.Itoa(R.maxwarn))
}

// Genion replaces solvent molecules in the run file s by ions up to the
// given concentration (mol/l), neutralizing the system's net charge if
// neutral is true. The structure goes to o; the topology p is updated in
// place. The SOL group is chosen as the one to take molecules from.
func (R *Runner) Genion(s, p, o string, conc float64, neutral bool) error {
	args := []string{"genion", "-s", s, "-p", p, "-o", o,
		"-conc", strconv.FormatFloat(conc, 'f', -1, 64)}
	if neutral {
		args = append(args, "-neutral")
	}
	return R.run("SOL\n", o, args...)
}
