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

//abfeflow runs the whole setup workflow for the calculation of the free
//energy of ligand binding, with a single instance of the ligand per box
//and optimized Boresch-style restraints: it stages the inputs for every
//ligand found under the top path and runs the setup stage for each.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/rmera/abfe/gmx"
	"github.com/rmera/abfe/workflow"
)

func main() {
	cwd, _ := os.Getwd()
	toppath := flag.String("toppath", "../data", "Path to the itp and structure files describing the protein and the ligand(s)")
	basepath := flag.String("basepath", cwd, "Path where everything will be done")
	mdppath := flag.String("mdppath", "../data/mdp", "Path to the mdp files for the protein and ligand simulations")
	temperature := flag.Float64("t", 298.15, "Temperature in Kelvin")
	boxtype := flag.String("bt", "dodecahedron", "Box type: "+strings.Join(gmx.BoxTypes, ", "))
	boxdist := flag.Float64("d", 1.5, "Distance (nm) between the solute and the box")
	seed := flag.Int64("seed", -1, "Random seed for the restraint selection")
	nobuild := flag.Bool("nobuild", false, "Only merge and derive restraints, don't solvate/ionize")
	gmxbin := flag.String("gmx", "gmx", "Command used to invoke Gromacs")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"abfeflow runs the setup workflow for ligand binding free energies.\n\nUsage:\n  %s [flags]\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if !gmx.ValidBoxType(*boxtype) {
		log.Fatalf("invalid box type %q, want one of: %s", *boxtype, strings.Join(gmx.BoxTypes, ", "))
	}
	o := workflow.NewDriverOptions()
	o.TopPath = *toppath
	o.BasePath = *basepath
	o.MdpPath = *mdppath
	o.Temperature = *temperature
	o.BoxType = *boxtype
	o.BoxDist = *boxdist
	o.Seed = *seed
	o.Build = !*nobuild
	o.Runner.SetCommand(*gmxbin)

	if err := workflow.Run(o); err != nil {
		log.Fatal(err)
	}
}
