/*
 * boresch.go, part of goABFE
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

//Package boresch selects anchor atoms for a Boresch-style restraint
//between a ligand and a protein, and produces the corresponding
//Gromacs intermolecular-interactions stanza: one distance, two angles
//and three dihedrals between three ligand atoms and three protein
//backbone atoms, each restrained with a harmonic potential.
package boresch

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/rmera/abfe"
)

// Options holds the adjustable parameters for the anchor selection.
// The zero value is not usable, get one from DefaultOptions.
type Options struct {
	seed      int64
	kbond     float64
	kangle    float64
	kdihedral float64
	ligcut    float64
	procut    float64
	maxtries  int
}

// DefaultOptions returns an Options with the default selection parameters:
// no fixed seed, force constants of 4184 kJ mol^-1 nm^-2 for the distance
// and 41.84 kJ mol^-1 rad^-2 for angles and dihedrals, a 0.5 nm cutoff
// between ligand anchors and a 0.8 nm protein search cutoff.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.seed = -1
	ret.kbond = 4184.0
	ret.kangle = 41.84
	ret.kdihedral = 41.84
	ret.ligcut = 0.5
	ret.procut = 0.8
	ret.maxtries = 100
	return ret
}

// Seed returns the random seed used for the selection and sets it, if a
// value is given. Any negative seed means "seed from the clock", which
// makes the selection non-reproducible.
func (o *Options) Seed(seed ...int64) int64 {
	ret := o.seed
	if len(seed) > 0 {
		o.seed = seed[0]
	}
	return ret
}

// KBond returns the distance force constant (kJ mol^-1 nm^-2) and sets it,
// if a valid value is given.
func (o *Options) KBond(k ...float64) float64 {
	ret := o.kbond
	if len(k) > 0 && k[0] > 0 {
		o.kbond = k[0]
	}
	return ret
}

// KAngle returns the angle force constant (kJ mol^-1 rad^-2) and sets it,
// if a valid value is given.
func (o *Options) KAngle(k ...float64) float64 {
	ret := o.kangle
	if len(k) > 0 && k[0] > 0 {
		o.kangle = k[0]
	}
	return ret
}

// KDihedral returns the dihedral force constant (kJ mol^-1 rad^-2) and
// sets it, if a valid value is given.
func (o *Options) KDihedral(k ...float64) float64 {
	ret := o.kdihedral
	if len(k) > 0 && k[0] > 0 {
		o.kdihedral = k[0]
	}
	return ret
}

// LigCutoff returns the maximum distance between consecutive ligand
// anchors (nm) and sets it, if a valid value is given.
func (o *Options) LigCutoff(d ...float64) float64 {
	ret := o.ligcut
	if len(d) > 0 && d[0] > 0 {
		o.ligcut = d[0]
	}
	return ret
}

// ProCutoff returns the protein anchor search cutoff around the first
// ligand anchor (nm) and sets it, if a valid value is given.
func (o *Options) ProCutoff(d ...float64) float64 {
	ret := o.procut
	if len(d) > 0 && d[0] > 0 {
		o.procut = d[0]
	}
	return ret
}

// Restraints is a selected set of Boresch anchors together with the
// geometric reference values measured on the input structures.
// Atom indexes are 0-based into the respective molecules; ComplexIDs
// gives the same atoms as 1-based indexes into the merged complex
// (ligand first), which is the numbering the topology stanza uses.
type Restraints struct {
	LigAtoms  [3]int
	ProAtoms  [3]int
	LigNames  [3]string
	ProNames  [3]string
	Dist      float64    //nm, P1-L1
	Angles    [2]float64 //degrees: P2-P1-L1 and P1-L1-L2
	Dihedrals [3]float64 //degrees: P3-P2-P1-L1, P2-P1-L1-L2, P1-L1-L2-L3
	kbond     float64
	kangle    float64
	kdihedral float64
	nlig      int       //atoms in the ligand, for complex numbering
	seed      int64     //the seed actually used
	candidate []float64 //distances of all protein candidate anchors to L1
}

// ComplexIDs returns the 1-based indexes of the six anchor atoms in the
// merged complex (ligand atoms first): first the three protein anchors,
// then the three ligand anchors.
func (R *Restraints) ComplexIDs() (pro [3]int, lig [3]int) {
	for i := 0; i < 3; i++ {
		pro[i] = R.nlig + R.ProAtoms[i] + 1
		lig[i] = R.LigAtoms[i] + 1
	}
	return pro, lig
}

// Seed returns the seed that was used for the selection.
func (R *Restraints) Seed() int64 {
	return R.seed
}

func isHeavy(at *abfe.Atom) bool {
	if at.Mass > 0 {
		return at.Mass > 3.0
	}
	if at.Symbol != "" {
		return at.Symbol != "H"
	}
	return at.Name != "" && at.Name[0] != 'H' && (at.Name[0] < '0' || at.Name[0] > '9')
}

var backboneNames = []string{"CA", "C", "N"}

func isBackbone(at *abfe.Atom) bool {
	for _, n := range backboneNames {
		if at.Name == n {
			return true
		}
	}
	return false
}

// pick returns a random element of the candidates, which must not be empty.
func pick(r *rand.Rand, candidates []int) int {
	return candidates[r.Intn(len(candidates))]
}

// within returns the indexes among the given ones whose distance to the
// point ref lies in (min, max].
func within(mol *abfe.Molecule, idx []int, ref []float64, min, max float64) []int {
	ret := make([]int, 0, len(idx))
	for _, i := range idx {
		d := abfe.Distance(mol.Coord(i), ref)
		if d > min && d <= max {
			ret = append(ret, i)
		}
	}
	return ret
}

const (
	minAnchorDist  = 0.08 //nm, anchors closer than this are degenerate
	minAnchorAngle = 10.0 //degrees, angles closer than this to 0 or 180 make dihedrals unstable
)

func angleOK(deg float64) bool {
	return deg > minAnchorAngle && deg < 180.0-minAnchorAngle
}

// Select picks three ligand and three protein anchor atoms and measures
// the restraint reference geometry between them. The selection is
// stochastic; a non-negative seed in the options makes it reproducible.
// The ligand must consist of exactly one residue.
func Select(pro, lig *abfe.Molecule, opts ...*Options) (*Restraints, error) {
	o := DefaultOptions()
	if len(opts) > 0 && opts[0] != nil {
		o = opts[0]
	}
	if res := lig.Residues(); len(res) != 1 {
		return nil, fmt.Errorf("boresch.Select: the ligand must be a single residue, got %d", len(res))
	}
	seed := o.seed
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(seed))
	heavy := make([]int, 0, lig.Len())
	for i := 0; i < lig.Len(); i++ {
		if isHeavy(lig.Atom(i)) {
			heavy = append(heavy, i)
		}
	}
	if len(heavy) < 3 {
		return nil, fmt.Errorf("boresch.Select: ligand has only %d heavy atoms, need at least 3", len(heavy))
	}
	com, err := lig.COM()
	if err != nil {
		//no masses assigned, use the centroid of the heavy atoms instead
		com = make([]float64, 3)
		for _, i := range heavy {
			c := lig.Coord(i)
			for j := 0; j < 3; j++ {
				com[j] += c[j] / float64(len(heavy))
			}
		}
	}
	backbone := make([]int, 0, pro.Len())
	for i := 0; i < pro.Len(); i++ {
		if isBackbone(pro.Atom(i)) {
			backbone = append(backbone, i)
		}
	}
	if len(backbone) < 3 {
		return nil, fmt.Errorf("boresch.Select: protein has only %d backbone anchor atoms", len(backbone))
	}
	R := new(Restraints)
	R.seed = seed
	R.nlig = lig.Len()
	R.kbond = o.kbond
	R.kangle = o.kangle
	R.kdihedral = o.kdihedral
	var l1, l2, l3, p1, p2, p3 int
	var ok bool
	for try := 0; try < o.maxtries; try++ {
		l1, l2, l3, ok = pickLigandAnchors(r, lig, heavy, com, o.ligcut)
		if !ok {
			continue
		}
		R.candidate = R.candidate[:0]
		cands := make([]int, 0, len(backbone))
		for _, i := range backbone {
			d := abfe.Distance(pro.Coord(i), lig.Coord(l1))
			R.candidate = append(R.candidate, d)
			if d > minAnchorDist && d <= o.procut {
				cands = append(cands, i)
			}
		}
		if len(cands) == 0 {
			return nil, fmt.Errorf("boresch.Select: no protein backbone atoms within %.2f nm of the ligand anchor", o.procut)
		}
		p1, p2, p3, ok = pickProteinAnchors(r, pro, lig, backbone, cands, l1, l2)
		if ok {
			break
		}
	}
	if !ok {
		return nil, fmt.Errorf("boresch.Select: couldn't find a non-degenerate anchor set in %d tries", o.maxtries)
	}
	R.LigAtoms = [3]int{l1, l2, l3}
	R.ProAtoms = [3]int{p1, p2, p3}
	for i := 0; i < 3; i++ {
		R.LigNames[i] = lig.Atom(R.LigAtoms[i]).Name
		R.ProNames[i] = pro.Atom(R.ProAtoms[i]).Name
	}
	cl1, cl2, cl3 := lig.Coord(l1), lig.Coord(l2), lig.Coord(l3)
	cp1, cp2, cp3 := pro.Coord(p1), pro.Coord(p2), pro.Coord(p3)
	R.Dist = abfe.Distance(cp1, cl1)
	R.Angles[0] = abfe.Rad2Deg(abfe.AngleBetween(cp2, cp1, cl1))
	R.Angles[1] = abfe.Rad2Deg(abfe.AngleBetween(cp1, cl1, cl2))
	R.Dihedrals[0] = abfe.Rad2Deg(abfe.Dihedral(cp3, cp2, cp1, cl1))
	R.Dihedrals[1] = abfe.Rad2Deg(abfe.Dihedral(cp2, cp1, cl1, cl2))
	R.Dihedrals[2] = abfe.Rad2Deg(abfe.Dihedral(cp1, cl1, cl2, cl3))
	return R, nil
}

// pickLigandAnchors selects a chain of three mutually close, non-collinear
// heavy ligand atoms, the first one biased towards the center of the
// molecule so the restraint pulls on the ligand core rather than on a
// flexible tail.
func pickLigandAnchors(r *rand.Rand, lig *abfe.Molecule, heavy []int, com []float64, ligcut float64) (l1, l2, l3 int, ok bool) {
	core := make([]int, len(heavy))
	copy(core, heavy)
	sort.Slice(core, func(i, j int) bool {
		return abfe.Distance(lig.Coord(core[i]), com) < abfe.Distance(lig.Coord(core[j]), com)
	})
	ncore := (len(core) + 1) / 2
	if ncore < 3 {
		ncore = 3
	}
	l1 = pick(r, core[:ncore])
	c2 := within(lig, remove(heavy, l1), lig.Coord(l1), minAnchorDist, ligcut)
	if len(c2) == 0 {
		c2 = nearest(lig, remove(heavy, l1), lig.Coord(l1), 1)
	}
	if len(c2) == 0 {
		return 0, 0, 0, false
	}
	l2 = pick(r, c2)
	c3 := within(lig, remove(remove(heavy, l1), l2), lig.Coord(l2), minAnchorDist, ligcut)
	if len(c3) == 0 {
		c3 = nearest(lig, remove(remove(heavy, l1), l2), lig.Coord(l2), 1)
	}
	good := make([]int, 0, len(c3))
	for _, i := range c3 {
		a := abfe.Rad2Deg(abfe.AngleBetween(lig.Coord(l1), lig.Coord(l2), lig.Coord(i)))
		if angleOK(a) {
			good = append(good, i)
		}
	}
	if len(good) == 0 {
		return 0, 0, 0, false
	}
	l3 = pick(r, good)
	return l1, l2, l3, true
}

// pickProteinAnchors selects a backbone anchor near the ligand plus its two
// predecessors along the chain, re-picking until the restraint angles are
// away from 0 and 180 degrees.
func pickProteinAnchors(r *rand.Rand, pro, lig *abfe.Molecule, backbone, cands []int, l1, l2 int) (p1, p2, p3 int, ok bool) {
	for try := 0; try < len(cands); try++ {
		p1 = pick(r, cands)
		pos := index(backbone, p1)
		switch {
		case pos >= 2:
			p2 = backbone[pos-1]
			p3 = backbone[pos-2]
		case pos+2 < len(backbone):
			//too close to the N-terminus to walk backwards, go forward
			p2 = backbone[pos+1]
			p3 = backbone[pos+2]
		default:
			continue
		}
		a1 := abfe.Rad2Deg(abfe.AngleBetween(pro.Coord(p2), pro.Coord(p1), lig.Coord(l1)))
		a2 := abfe.Rad2Deg(abfe.AngleBetween(pro.Coord(p1), lig.Coord(l1), lig.Coord(l2)))
		if angleOK(a1) && angleOK(a2) {
			return p1, p2, p3, true
		}
	}
	return 0, 0, 0, false
}

// remove returns a copy of the slice without the element v.
func remove(s []int, v int) []int {
	ret := make([]int, 0, len(s))
	for _, x := range s {
		if x != v {
			ret = append(ret, x)
		}
	}
	return ret
}

// nearest returns the n indexes among idx closest to the point ref.
func nearest(mol *abfe.Molecule, idx []int, ref []float64, n int) []int {
	c := make([]int, len(idx))
	copy(c, idx)
	sort.Slice(c, func(i, j int) bool {
		return abfe.Distance(mol.Coord(c[i]), ref) < abfe.Distance(mol.Coord(c[j]), ref)
	})
	if n > len(c) {
		n = len(c)
	}
	return c[:n]
}

func index(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

// DG returns the analytic standard-state free energy of releasing the
// restraint (kJ/mol) at the given temperature (K), with the usual Boresch
// formula and a standard volume of 1.66 nm^3 per molecule.
func (R *Restraints) DG(temp float64) float64 {
	const v0 = 1.66            //nm^3, standard-state volume per molecule
	const gas = 8.314462618e-3 //kJ/(mol K)
	rt := gas * temp
	sinA := math.Sin(abfe.Deg2Rad(R.Angles[0]))
	sinB := math.Sin(abfe.Deg2Rad(R.Angles[1]))
	num := 8.0 * math.Pi * math.Pi * v0 *
		math.Sqrt(R.kbond*R.kangle*R.kangle*R.kdihedral*R.kdihedral*R.kdihedral)
	den := R.Dist * R.Dist * sinA * sinB * math.Pow(2.0*math.Pi*rt, 3.0)
	return rt * math.Log(num/den)
}
