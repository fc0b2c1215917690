/*
 * plot_test.go, part of goABFE
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
	"os"
	"path/filepath"
	"testing"
)

func TestPlotCandidates(Te *testing.T) {
	pro, lig := testSystem(Te)
	o := DefaultOptions()
	o.Seed(17)
	r, err := Select(pro, lig, o)
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "hist")
	if err := r.PlotCandidates(name); err != nil {
		Te.Fatal(err)
	}
	st, err := os.Stat(name + ".png")
	if err != nil || st.Size() == 0 {
		Te.Errorf("no histogram written: %v", err)
	}
	empty := new(Restraints)
	if err := empty.PlotCandidates(name); err == nil {
		Te.Error("expected an error without candidate distances")
	}
}
