/*
 * doc.go, part of goABFE
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

//Package abfe prepares input files for absolute binding free-energy
//calculations with Gromacs. It provides atom and molecule structures,
//reading and writing of GRO coordinate files, merging of a ligand and a
//protein into a bound complex, and the geometric functions needed to
//derive Boresch-style restraints. The heavier machinery (topology
//editing, restraint selection, driving the gmx binary) lives in the
//subpackages top, boresch, gmx and workflow.
package abfe
