/*
 * setup.go, part of goABFE
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

//Package workflow assembles protein-ligand systems for absolute binding
//free-energy calculations: it merges the input structures and topologies
//into a complex, derives the Boresch restraint, writes the result, and
//optionally builds (solvates and ionizes) the complex and ligand boxes
//with Gromacs.
package workflow

import (
	"fmt"
	"os"

	"github.com/rmera/abfe"
	"github.com/rmera/abfe/boresch"
	"github.com/rmera/abfe/gmx"
	"github.com/rmera/abfe/top"
)

// SetupOptions holds the inputs and switches for one setup run. All paths
// are relative to the current directory, where the outputs are written.
type SetupOptions struct {
	ProTop      string //protein topology
	LigTop      string //ligand include topology
	ProCrd      string //protein structure, GRO format
	LigCrd      string //ligand structure, GRO format
	Build       bool   //solvate and ionize the systems with gmx
	SingleBox   bool   //double-system/single-box setup (accepted, not implemented)
	Seed        int64  //seed for the restraint selection; negative for a clock seed
	BoxType     string
	BoxDist     float64 //solute-box distance, nm
	Conc        float64 //ion concentration, mol/l
	Temperature float64 //K, only used for the restraint report and mdp generation
	Plot        bool    //save a diagnostic histogram of the restraint candidates
	Runner      *gmx.Runner
}

// NewSetupOptions returns a SetupOptions with the defaults set.
func NewSetupOptions() *SetupOptions {
	o := new(SetupOptions)
	o.ProTop = "protein.top"
	o.LigTop = "ligand.itp"
	o.ProCrd = "protein.gro"
	o.LigCrd = "ligand.gro"
	o.Seed = -1
	o.BoxType = "cubic"
	o.BoxDist = 1.2
	o.Conc = 0.15
	o.Temperature = 298.15
	o.Runner = gmx.NewRunner()
	return o
}

// Setup runs the whole setup stage: it loads the ligand and protein,
// merges them into a complex, derives the ligand-protein restraint, writes
// complex.gro, ligand.itp and complex.top, and, if requested, builds the
// solvated and ionized complex and ligand systems with Gromacs. The
// restraint stanza is written into complex.top only when the systems are
// not being built, because solvate and genion mishandle topologies that
// carry it; after a build it is reinserted into the final topology.
func Setup(o *SetupOptions) (*boresch.Restraints, error) {
	if o == nil {
		o = NewSetupOptions()
	}
	lig, err := abfe.GroFileRead(o.LigCrd)
	if err != nil {
		return nil, fmt.Errorf("workflow.Setup: %w", err)
	}
	pro, err := abfe.GroFileRead(o.ProCrd)
	if err != nil {
		return nil, fmt.Errorf("workflow.Setup: %w", err)
	}
	ligtop, err := top.FileRead(o.LigTop)
	if err != nil {
		return nil, fmt.Errorf("workflow.Setup: %w", err)
	}
	protop, err := top.FileRead(o.ProTop)
	if err != nil {
		return nil, fmt.Errorf("workflow.Setup: %w", err)
	}
	//the restraint and topology machinery assume a single ligand residue,
	//so this is checked before anything is written
	if res := lig.Residues(); len(res) != 1 {
		return nil, fmt.Errorf("workflow.Setup: the ligand in %s must contain exactly one residue, got %d", o.LigCrd, len(res))
	}
	if masses, err := ligtop.Masses(); err == nil {
		if err := abfe.AssignMasses(lig, masses); err != nil {
			return nil, fmt.Errorf("workflow.Setup: %w", err)
		}
	} else if err := abfe.AssignMassesFromSymbols(lig); err != nil {
		return nil, fmt.Errorf("workflow.Setup: %w", err)
	}
	//ligands prepared by parametrization servers often lack position
	//restraints, equilibration needs them
	if len(ligtop.MolTypes) > 0 && !ligtop.MolTypes[0].HasPosre && len(ligtop.Footer) == 0 {
		if err := ligtop.MakePosre(); err != nil {
			return nil, fmt.Errorf("workflow.Setup: %w", err)
		}
	}
	com, err := abfe.Merge(lig, pro)
	if err != nil {
		return nil, fmt.Errorf("workflow.Setup: %w", err)
	}
	comtop := protop.Copy()
	comtop.AddMoleculeInclude("ligand.itp")
	comtop.SystemName = "Complex"
	comtop.PrependMolecule(ligtop.Name(), 1)
	comtop.AtomTypes = top.MergeAtomTypes(ligtop.AtomTypes, protop.AtomTypes)

	bopts := boresch.DefaultOptions()
	bopts.Seed(o.Seed)
	rest, err := boresch.Select(pro, lig, bopts)
	if err != nil {
		return nil, fmt.Errorf("workflow.Setup: %w", err)
	}
	if err := rest.SummaryFile("restraints.info", o.Temperature); err != nil {
		return nil, fmt.Errorf("workflow.Setup: %w", err)
	}
	if o.Plot {
		if err := rest.PlotCandidates("restraints"); err != nil {
			return nil, fmt.Errorf("workflow.Setup: %w", err)
		}
	}
	if !o.Build {
		comtop.SetIntermolecular(rest.TopBlock())
	}
	if err := abfe.GroFileWrite("complex.gro", com); err != nil {
		return nil, fmt.Errorf("workflow.Setup: %w", err)
	}
	//the ligand types went into the complex topology, so they are not
	//repeated in the itp
	if err := ligtop.FileWrite("ligand.itp", false); err != nil {
		return nil, fmt.Errorf("workflow.Setup: %w", err)
	}
	if err := comtop.FileWrite("complex.top"); err != nil {
		return nil, fmt.Errorf("workflow.Setup: %w", err)
	}
	if o.Build {
		if o.SingleBox {
			//the double-system/single-box build is not available yet; the
			//merged files written above are still valid starting points
			fmt.Fprintln(os.Stderr, "workflow.Setup: the single-box build is not implemented, only the merged input files were written")
			return rest, nil
		}
		if err := buildComplex(o, rest); err != nil {
			return nil, err
		}
		if err := buildLigand(o, lig, ligtop, protop.ForceField()); err != nil {
			return nil, err
		}
	}
	return rest, nil
}

// inDir runs f inside the (newly created) directory dir, restoring the
// working directory afterwards. Not safe under concurrent use, which this
// package never attempts.
func inDir(dir string, f func() error) error {
	if err := os.Mkdir(dir, 0755); err != nil {
		return fmt.Errorf("workflow: %w", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("workflow: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("workflow: %w", err)
	}
	defer os.Chdir(cwd)
	return f()
}

// buildComplex solvates and ionizes the complex in its own directory, then
// reinserts the restraint stanza into the post-build topology.
func buildComplex(o *SetupOptions, rest *boresch.Restraints) error {
	err := inDir("complex", func() error {
		for _, f := range []string{"complex.gro", "complex.top", "ligand.itp"} {
			if err := CopyFile("../"+f, f); err != nil {
				return err
			}
		}
		if err := buildSystem(o, "complex.gro", "complex.top"); err != nil {
			return err
		}
		comtop, err := top.FileRead("complex.top")
		if err != nil {
			return err
		}
		comtop.SetIntermolecular(rest.TopBlock())
		return comtop.FileWrite("complex.top")
	})
	if err != nil {
		return fmt.Errorf("workflow.Setup: complex: %w", err)
	}
	return nil
}

// buildLigand writes the isolated ligand box in its own directory, turning
// the ligand itp into a standalone topology that borrows the protein's
// force field for water and ions, and solvates and ionizes it.
func buildLigand(o *SetupOptions, lig *abfe.Molecule, ligtop *top.Topology, forcefield string) error {
	err := inDir("ligand", func() error {
		if err := abfe.GroFileWrite("ligand.gro", lig); err != nil {
			return err
		}
		lt := ligtop.Copy()
		if err := lt.ToTop(forcefield); err != nil {
			return err
		}
		if err := lt.FileWrite("ligand.top"); err != nil {
			return err
		}
		return buildSystem(o, "ligand.gro", "ligand.top")
	})
	if err != nil {
		return fmt.Errorf("workflow.Setup: ligand: %w", err)
	}
	return nil
}

// buildSystem runs the fixed Gromacs sequence in the current directory:
// box definition, solvation, preprocessing and ion placement.
func buildSystem(o *SetupOptions, gro, topol string) error {
	r := o.Runner
	if r == nil {
		r = gmx.NewRunner()
	}
	if err := r.Editconf(gro, "editconf.gro", o.BoxType, o.BoxDist); err != nil {
		return err
	}
	if err := r.Solvate("editconf.gro", "spc216.gro", topol, "solvate.gro"); err != nil {
		return err
	}
	if err := gmx.WriteMDP("enmin", "genion.mdp"); err != nil {
		return err
	}
	if err := r.Grompp("genion.mdp", "solvate.gro", topol, "genion.tpr"); err != nil {
		return err
	}
	return r.Genion("genion.tpr", topol, "genion.gro", o.Conc, true)
}
