/*
 * files.go, part of goABFE
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
	"io"
	"os"

	"github.com/rmera/abfe/gmx"
)

// CopyFile copies the file src to trg, then checks that trg exists.
func CopyFile(src, trg string) error {
	fin, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("workflow.CopyFile: %w", err)
	}
	defer fin.Close()
	fout, err := os.Create(trg)
	if err != nil {
		return fmt.Errorf("workflow.CopyFile: %w", err)
	}
	defer fout.Close()
	if _, err := io.Copy(fout, fin); err != nil {
		return fmt.Errorf("workflow.CopyFile: %s to %s: %w", src, trg, err)
	}
	if err := fout.Close(); err != nil {
		return fmt.Errorf("workflow.CopyFile: %s: %w", trg, err)
	}
	return gmx.CheckFileReady(trg)
}

// CopyIfMissing copies src to trg only if trg doesn't exist yet. Inputs
// already staged by the user are never overwritten.
func CopyIfMissing(src, trg string) error {
	if _, err := os.Stat(trg); err == nil {
		return nil
	}
	return CopyFile(src, trg)
}
