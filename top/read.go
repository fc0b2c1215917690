/*
 * read.go, part of goABFE
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

package top

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

type topHeader struct {
	wany  *regexp.Regexp
	known map[string]*regexp.Regexp
}

func newTopHeader() *topHeader {
	R := new(topHeader)
	R.wany = regexp.MustCompile(`\[\p{Zs}*.*\p{Zs}*\]`)
	R.known = map[string]*regexp.Regexp{
		"atomtypes":      regexp.MustCompile(`\[\p{Zs}*atomtypes\p{Zs}*\]`),
		"moleculetype":   regexp.MustCompile(`\[\p{Zs}*moleculetype\p{Zs}*\]`),
		"atoms":          regexp.MustCompile(`\[\p{Zs}*atoms\p{Zs}*\]`),
		"posre":          regexp.MustCompile(`\[\p{Zs}*position_restraints\p{Zs}*\]`),
		"system":         regexp.MustCompile(`\[\p{Zs}*system\p{Zs}*\]`),
		"molecules":      regexp.MustCompile(`\[\p{Zs}*molecules\p{Zs}*\]`),
		"intermolecular": regexp.MustCompile(`\[\p{Zs}*intermolecular_interactions\p{Zs}*\]`),
	}
	return R
}

// Is returns true if the line is a Gromacs section header. Comments are
// discarded first.
func (T *topHeader) Is(line string) bool {
	return T.wany.MatchString(cleanString(line))
}

// Which returns the canonical name of the header the line opens, or
// "other" for a header this package doesn't interpret, or an empty string
// if the line is not a header at all.
func (T *topHeader) Which(line string) string {
	line = cleanString(line)
	if !T.wany.MatchString(line) {
		return ""
	}
	for k, v := range T.known {
		if v.MatchString(line) {
			return k
		}
	}
	return "other"
}

// StringReader is the part of bufio.Reader this package needs.
type StringReader interface {
	ReadString(delim byte) (string, error)
}

// Read parses a Gromacs topology from r. If itp is true the file is
// treated as an include topology (no system/molecules sections expected).
// Include directives are recorded but not followed; moleculetype blocks
// are carried verbatim except for their [ atoms ] section, which is also
// parsed. Unrecognized sections pass through untouched.
func Read(r StringReader, itp bool) (*Topology, error) {
	T := new(Topology)
	T.IsITP = itp
	h := newTopHeader()
	var s string
	var err error
	section := "" //the recognized section at top level, or within a moleculetype
	var mt *MolType
	ifdepth := 0     //#ifdef nesting inside the current moleculetype block
	inInter := false //inside the intermolecular_interactions block, sub-sections included
	for s, err = r.ReadString('\n'); err == nil || (errors.Is(err, io.EOF) && s != ""); s, err = r.ReadString('\n') {
		stop := errors.Is(err, io.EOF)
		c := cleanString(s)
		raw := strings.TrimRight(s, "\n")
		if c == "" {
			if stop {
				break
			}
			continue
		}
		if h.Is(c) {
			which := h.Which(c)
			switch which {
			case "moleculetype":
				mt = new(MolType)
				mt.lines = append(mt.lines, "[ moleculetype ]")
				T.MolTypes = append(T.MolTypes, mt)
				ifdepth = 0
				inInter = false
			case "atomtypes", "system", "molecules", "intermolecular":
				mt = nil //these end any moleculetype block
				inInter = which == "intermolecular"
				if inInter {
					T.inter = append(T.inter, "[ intermolecular_interactions ]")
				}
			default:
				//a section this package doesn't interpret; the bonds, angles
				//and dihedrals sub-sections of an intermolecular block land
				//here and stay with it
				if mt != nil {
					mt.lines = append(mt.lines, raw)
					if which == "posre" {
						mt.HasPosre = true
					}
				} else if inInter {
					T.inter = append(T.inter, raw)
				} else if len(T.MolTypes) == 0 {
					T.Includes = append(T.Includes, raw)
				} else {
					T.Footer = append(T.Footer, raw)
				}
			}
			section = which
			if stop {
				break
			}
			continue
		}
		//preprocessor lines outside a moleculetype block keep their
		//position class: header, after-atomtypes, or footer
		if mt == nil && strings.HasPrefix(c, "#") {
			switch {
			case inInter:
				T.inter = append(T.inter, raw)
			case len(T.MolTypes) > 0:
				T.Footer = append(T.Footer, raw)
			case section == "atomtypes" || len(T.AtomTypes) > 0:
				T.MolIncludes = append(T.MolIncludes, raw)
			default:
				T.Includes = append(T.Includes, raw)
			}
			if stop {
				break
			}
			continue
		}
		//an unguarded include that is not a position-restraint file ends
		//the moleculetype block: it is a solvent/ion include, pdb2gmx
		//puts those right after the protein block
		if mt != nil && ifdepth == 0 && strings.HasPrefix(c, "#include") && !strings.Contains(c, "posre") {
			mt = nil
			T.Footer = append(T.Footer, raw)
			if stop {
				break
			}
			continue
		}
		switch {
		case mt != nil:
			if strings.HasPrefix(c, "#ifdef") || strings.HasPrefix(c, "#ifndef") {
				ifdepth++
			} else if strings.HasPrefix(c, "#endif") {
				ifdepth--
			}
			mt.lines = append(mt.lines, raw)
			if strings.Contains(c, "#include") && strings.Contains(c, "posre") {
				mt.HasPosre = true
			}
			switch section {
			case "moleculetype":
				if mt.Name == "" {
					mt.Name = fi(c)[0]
				}
			case "atoms":
				at, err2 := atomFromLine(c)
				if err2 != nil {
					return nil, fmt.Errorf("top.Read: moleculetype %s: %w", mt.Name, err2)
				}
				mt.Atoms = append(mt.Atoms, at)
			}
		case section == "atomtypes":
			f := fi(c)
			T.AtomTypes = append(T.AtomTypes, &AtomType{Name: f[0], Line: raw})
		case section == "system":
			if T.SystemName == "" {
				T.SystemName = c
			}
		case section == "molecules":
			f := fi(c)
			if len(f) != 2 {
				return nil, fmt.Errorf("top.Read: bad molecules entry %q", c)
			}
			count, err2 := strconv.Atoi(f[1])
			if err2 != nil {
				return nil, fmt.Errorf("top.Read: bad molecule count in %q: %w", c, err2)
			}
			T.Molecules = append(T.Molecules, &Mol{Name: f[0], Count: count})
		case inInter:
			T.inter = append(T.inter, raw)
		case len(T.MolTypes) == 0:
			T.Includes = append(T.Includes, raw)
		default:
			T.Footer = append(T.Footer, raw)
		}
		if stop {
			break
		}
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("top.Read: %w", err)
	}
	if len(T.MolTypes) == 0 && len(T.AtomTypes) == 0 && len(T.Molecules) == 0 {
		return nil, fmt.Errorf("top.Read: no topology sections found")
	}
	return T, nil
}

// FileRead reads the topology file with the given name. Files named *.itp
// are treated as include topologies.
func FileRead(name string) (*Topology, error) {
	fin, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("top.FileRead: %w", err)
	}
	defer fin.Close()
	itp := strings.HasSuffix(name, ".itp")
	T, err := Read(bufio.NewReader(fin), itp)
	if err != nil {
		return nil, fmt.Errorf("top.FileRead: %s: %w", name, err)
	}
	return T, nil
}
