/*
 * mdp.go, part of goABFE
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

package gmx

import (
	"fmt"
	"os"
)

//Minimal mdp presets for the system-building steps. These are not meant
//for production runs: enmin is just enough for genion preprocessing and a
//short minimization, equil is a plain NVT equilibration at the requested
//temperature.

const enminMDP = `; energy minimization
integrator               = steep
nsteps                   = 5000
emtol                    = 100
emstep                   = 0.01
cutoff-scheme            = Verlet
nstlist                  = 10
rlist                    = 1.0
coulombtype              = PME
rcoulomb                 = 1.0
vdwtype                  = Cut-off
rvdw                     = 1.0
constraints              = none
`

const equilMDPFmt = `; NVT equilibration
integrator               = sd
nsteps                   = 50000
dt                       = 0.002
cutoff-scheme            = Verlet
nstlist                  = 10
rlist                    = 1.0
coulombtype              = PME
rcoulomb                 = 1.0
vdwtype                  = Cut-off
rvdw                     = 1.0
constraints              = h-bonds
tc-grps                  = System
tau-t                    = 1.0
ref-t                    = %.2f
gen-vel                  = yes
gen-temp                 = %.2f
`

// WriteMDP writes one of the built-in mdp presets ("enmin" or "equil") to
// the file fout. The temperature (K) is only used by the equil preset;
// 298.15 is used if none is given.
func WriteMDP(preset, fout string, temp ...float64) error {
	t := 298.15
	if len(temp) > 0 && temp[0] > 0 {
		t = temp[0]
	}
	var content string
	switch preset {
	case "enmin":
		content = enminMDP
	case "equil":
		content = fmt.Sprintf(equilMDPFmt, t, t)
	default:
		return fmt.Errorf("gmx.WriteMDP: unknown preset %q", preset)
	}
	if err := os.WriteFile(fout, []byte(content), 0644); err != nil {
		return fmt.Errorf("gmx.WriteMDP: %w", err)
	}
	return CheckFileReady(fout)
}
