/*
 * main.go, part of goABFE
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

//abfesetup prepares the input files for an absolute binding free-energy
//calculation: it merges a ligand and a protein into a complex, derives a
//Boresch-style restraint between them, and optionally solvates and
//ionizes the complex and ligand boxes with Gromacs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rmera/abfe/workflow"
)

func main() {
	protop := flag.String("pt", "protein.top", "Input topology file for the protein")
	ligtop := flag.String("lt", "ligand.itp", "Input topology file for the ligand")
	procrd := flag.String("pc", "protein.gro", "Input structure file in GRO format for the protein")
	ligcrd := flag.String("lc", "ligand.gro", "Input structure file in GRO format for the ligand")
	build := flag.Bool("build", false, "Build the systems (editconf, solvate, genion) with a standard setup once the input files are ready")
	singlebox := flag.Bool("singlebox", false, "Use the double-system single-box setup")
	seed := flag.Int64("seed", -1, "Random seed for picking the restraint atoms. The automated selection is stochastic; give a seed for reproducible behaviour")
	plot := flag.Bool("plot", false, "Save a histogram of the candidate protein anchors (restraints.png)")
	gmxbin := flag.String("gmx", "gmx", "Command used to invoke Gromacs")
	verbose := flag.Bool("v", false, "Print every gmx command line before running it")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"abfesetup prepares the inputs for absolute binding free-energy calculations.\n\nUsage:\n  %s [flags]\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	o := workflow.NewSetupOptions()
	o.ProTop = *protop
	o.LigTop = *ligtop
	o.ProCrd = *procrd
	o.LigCrd = *ligcrd
	o.Build = *build
	o.SingleBox = *singlebox
	o.Seed = *seed
	o.Plot = *plot
	o.Runner.SetCommand(*gmxbin)
	o.Runner.SetVerbose(*verbose)

	rest, err := workflow.Setup(o)
	if err != nil {
		log.Fatal(err)
	}
	pro, lig := rest.ComplexIDs()
	fmt.Printf("Restraint anchors (complex numbering): protein %v, ligand %v\n", pro, lig)
	fmt.Printf("Details in restraints.info\n")
	if *build && !*singlebox {
		fmt.Print("\n\n          ********** Setup Completed **********\n\n")
	}
}
