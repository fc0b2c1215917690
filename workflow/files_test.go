/*
 * files_test.go, part of goABFE
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
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFile(Te *testing.T) {
	dir := Te.TempDir()
	src := filepath.Join(dir, "src.txt")
	trg := filepath.Join(dir, "trg.txt")
	if err := os.WriteFile(src, []byte("payload"), 0644); err != nil {
		Te.Fatal(err)
	}
	if err := CopyFile(src, trg); err != nil {
		Te.Fatal(err)
	}
	b, err := os.ReadFile(trg)
	if err != nil {
		Te.Fatal(err)
	}
	if string(b) != "payload" {
		Te.Errorf("copied content wrong: %q", b)
	}
	if err := CopyFile(filepath.Join(dir, "nope"), trg); err == nil {
		Te.Error("expected an error on a missing source")
	}
}

func TestCopyIfMissing(Te *testing.T) {
	dir := Te.TempDir()
	src := filepath.Join(dir, "src.txt")
	trg := filepath.Join(dir, "trg.txt")
	if err := os.WriteFile(src, []byte("new"), 0644); err != nil {
		Te.Fatal(err)
	}
	if err := os.WriteFile(trg, []byte("staged by hand"), 0644); err != nil {
		Te.Fatal(err)
	}
	if err := CopyIfMissing(src, trg); err != nil {
		Te.Fatal(err)
	}
	b, _ := os.ReadFile(trg)
	//files already staged by the user are never overwritten
	if string(b) != "staged by hand" {
		Te.Errorf("an existing target was overwritten: %q", b)
	}
	trg2 := filepath.Join(dir, "trg2.txt")
	if err := CopyIfMissing(src, trg2); err != nil {
		Te.Fatal(err)
	}
	b, _ = os.ReadFile(trg2)
	if string(b) != "new" {
		Te.Errorf("copy to a missing target wrong: %q", b)
	}
}
