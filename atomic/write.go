/*
CodeHealth - code quality and delivery metrics toolkit
Copyright (C) 2026  CodeHealth Authors

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package atomic

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

func Write(name string, data []byte) error {
	pattern := "tmp-*-" + filepath.Base(name)
	f, err := os.CreateTemp(filepath.Dir(name), pattern)
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %v", err)
	}
	defer os.Remove(f.Name())
	// Explicitly set the permissions of the temporary file to 0644
	if err := os.Chmod(f.Name(), 0644); err != nil {
		return fmt.Errorf("os.Chmod: %v", err)
	}
	_, err = f.Write(data)
	if err != nil {
		return fmt.Errorf("failed to write to file %s: %v", f.Name(), err)
	}
	err = os.Rename(f.Name(), name)
	if err != nil {
		return fmt.Errorf("failed to rename file %s to %s: %v", f.Name(), name, err)
	}
	return nil
}

// WriteCSV renders the header and rows as CSV and writes the result in one
// atomic rename, so a reader never observes a partially written report.
func WriteCSV(name string, header []string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("csv.Write: %v", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("csv.WriteAll: %v", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv.Flush: %v", err)
	}
	return Write(name, buf.Bytes())
}
