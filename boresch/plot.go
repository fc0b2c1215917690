/*
 * plot.go, part of goABFE
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
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotCandidates saves a histogram of the distances between the first
// ligand anchor and every candidate protein backbone atom considered
// during the selection, as a PNG file with the given name. It is a
// diagnostic: a selection made from a thin or remote candidate pool is
// usually worth inspecting before spending simulation time on it.
func (R *Restraints) PlotCandidates(plotname string) error {
	if len(R.candidate) == 0 {
		return fmt.Errorf("boresch.PlotCandidates: no candidate distances recorded")
	}
	p := plot.New()
	p.Title.Text = "Protein anchor candidates"
	p.X.Label.Text = "Distance to ligand anchor L1 (nm)"
	p.Y.Label.Text = "Count"
	vals := make(plotter.Values, len(R.candidate))
	copy(vals, R.candidate)
	h, err := plotter.NewHist(vals, 16)
	if err != nil {
		return fmt.Errorf("boresch.PlotCandidates: %w", err)
	}
	p.Add(h)
	filename := fmt.Sprintf("%s.png", plotname)
	if err := p.Save(4*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("boresch.PlotCandidates: %w", err)
	}
	return nil
}
