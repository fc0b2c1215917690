/*
 * driver.go, part of goABFE
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

package workflow

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rmera/abfe/gmx"
)

// DriverOptions are the parameters for a whole-workflow run over one or
// several ligands of the same protein.
type DriverOptions struct {
	TopPath     string  //input structures and topologies
	BasePath    string  //where the work is done
	MdpPath     string  //mdp files for the simulations; generated if absent
	Temperature float64 //K
	BoxType     string
	BoxDist     float64 //solute-box distance, nm
	Seed        int64
	Build       bool
	Plot        bool
	Runner      *gmx.Runner
}

// NewDriverOptions returns a DriverOptions with the defaults set.
func NewDriverOptions() *DriverOptions {
	o := new(DriverOptions)
	o.TopPath = "../data"
	o.BasePath, _ = os.Getwd()
	o.MdpPath = "../data/mdp"
	o.Temperature = 298.15
	o.BoxType = "dodecahedron"
	o.BoxDist = 1.5
	o.Seed = -1
	o.Build = true
	o.Runner = gmx.NewRunner()
	return o
}

var setupInputs = []string{"protein.top", "protein.gro", "ligand.itp", "ligand.gro"}

// hasSetupInputs returns whether dir contains the per-ligand input files
// (ligand.itp and ligand.gro). The protein files may live there too, or be
// shared at the root of the top path.
func hasSetupInputs(dir string) bool {
	for _, f := range []string{"ligand.itp", "ligand.gro"} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			return false
		}
	}
	return true
}

// ligandSets lists the input sets under toppath: every subdirectory with
// ligand files is one set; if there are none but toppath itself carries
// the ligand files, it is the single set.
func ligandSets(toppath string) ([]string, error) {
	entries, err := os.ReadDir(toppath)
	if err != nil {
		return nil, fmt.Errorf("workflow: %w", err)
	}
	sets := []string{}
	for _, e := range entries {
		if e.IsDir() && hasSetupInputs(filepath.Join(toppath, e.Name())) {
			sets = append(sets, e.Name())
		}
	}
	if len(sets) == 0 && hasSetupInputs(toppath) {
		sets = append(sets, ".")
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("workflow: no ligand input sets (ligand.itp + ligand.gro) found under %s", toppath)
	}
	return sets, nil
}

// stage copies the four setup inputs for the given set into workdir.
// Per-ligand files shadow the shared ones at the root of the top path.
func stage(toppath, set, workdir string) error {
	for _, f := range setupInputs {
		src := filepath.Join(toppath, set, f)
		if _, err := os.Stat(src); err != nil {
			src = filepath.Join(toppath, f)
		}
		if err := CopyIfMissing(src, filepath.Join(workdir, f)); err != nil {
			return err
		}
	}
	return nil
}

// stageMDP copies every mdp file from mdppath into workdir, or, if the
// directory doesn't exist, generates the built-in minimization and
// equilibration presets at the requested temperature.
func stageMDP(mdppath, workdir string, temp float64) error {
	files, err := filepath.Glob(filepath.Join(mdppath, "*.mdp"))
	if err == nil && len(files) > 0 {
		for _, f := range files {
			if err := CopyIfMissing(f, filepath.Join(workdir, filepath.Base(f))); err != nil {
				return err
			}
		}
		return nil
	}
	if err := gmx.WriteMDP("enmin", filepath.Join(workdir, "enmin.mdp")); err != nil {
		return err
	}
	return gmx.WriteMDP("equil", filepath.Join(workdir, "equil.mdp"), temp)
}

// Run executes the setup stage for every ligand input set found under the
// top path, each in its own directory under the base path. It stops at the
// first failing ligand.
func Run(o *DriverOptions) error {
	if o == nil {
		o = NewDriverOptions()
	}
	if !gmx.ValidBoxType(o.BoxType) {
		return fmt.Errorf("workflow.Run: invalid box type %q, want one of %v", o.BoxType, gmx.BoxTypes)
	}
	sets, err := ligandSets(o.TopPath)
	if err != nil {
		return fmt.Errorf("workflow.Run: %w", err)
	}
	toppath, err := filepath.Abs(o.TopPath)
	if err != nil {
		return fmt.Errorf("workflow.Run: %w", err)
	}
	mdppath, err := filepath.Abs(o.MdpPath)
	if err != nil {
		return fmt.Errorf("workflow.Run: %w", err)
	}
	for _, set := range sets {
		name := set
		if name == "." {
			name = "abfe"
		}
		workdir := filepath.Join(o.BasePath, name)
		if err := os.MkdirAll(workdir, 0755); err != nil {
			return fmt.Errorf("workflow.Run: %w", err)
		}
		if err := stage(toppath, set, workdir); err != nil {
			return fmt.Errorf("workflow.Run: %s: %w", name, err)
		}
		if err := stageMDP(mdppath, workdir, o.Temperature); err != nil {
			return fmt.Errorf("workflow.Run: %s: %w", name, err)
		}
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("workflow.Run: %w", err)
		}
		if err := os.Chdir(workdir); err != nil {
			return fmt.Errorf("workflow.Run: %w", err)
		}
		so := NewSetupOptions()
		so.Build = o.Build
		so.Seed = o.Seed
		so.BoxType = o.BoxType
		so.BoxDist = o.BoxDist
		so.Temperature = o.Temperature
		so.Plot = o.Plot
		if o.Runner != nil {
			so.Runner = o.Runner
		}
		_, err = Setup(so)
		if err2 := os.Chdir(cwd); err2 != nil {
			return fmt.Errorf("workflow.Run: %w", err2)
		}
		if err != nil {
			return fmt.Errorf("workflow.Run: %s: %w", name, err)
		}
		fmt.Printf("workflow: ligand set %s ready in %s\n", name, workdir)
	}
	return nil
}
