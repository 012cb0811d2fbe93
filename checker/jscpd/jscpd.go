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

package jscpd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/codehealth/codehealth/checker"
)

const OutputFileName = "jscpd_output.txt"

// jscpd runs on node, which caps its old-space heap well below what a large
// scan needs. 4096 MB matches the ceiling the tool's own docs recommend.
const nodeOptions = "NODE_OPTIONS=--max-old-space-size=4096"

// BuildArgs assembles the jscpd invocation. The threshold value is passed
// verbatim as both the minimum token count and the duplication percentage
// threshold; jscpd validates it itself.
func BuildArgs(scanPath, threshold, outputDir, formats string, ignoreDirPatterns []string) []string {
	args := []string{
		"--min-tokens", threshold,
		"--threshold", threshold,
		"--format", formats,
		"--output", outputDir,
		"--reporters", "console,html",
	}
	if len(ignoreDirPatterns) > 0 {
		args = append(args, "--ignore", strings.Join(ignoreDirPatterns, ","))
	}
	return append(args, scanPath)
}

// Exec invokes jscpd once against scanPath. The console output lands in
// OutputFileName under outputDir, next to the HTML report tree jscpd writes
// itself. The output directory is created if absent.
func Exec(jscpdBin, scanPath, threshold, outputDir, formats string, ignoreDirPatterns []string, timeoutMinute int) (checker.Status, error) {
	err := os.MkdirAll(outputDir, os.ModePerm)
	if err != nil {
		return checker.Failed, fmt.Errorf("failed to create output dir %s: %v", outputDir, err)
	}
	out, err := checker.CreateOutputFile(filepath.Join(outputDir, OutputFileName))
	if err != nil {
		return checker.Failed, err
	}
	defer out.Close()
	cmd := exec.Command(jscpdBin, BuildArgs(scanPath, threshold, outputDir, formats, ignoreDirPatterns)...)
	status := checker.RunToFile(cmd, "jscpd", []string{nodeOptions}, timeoutMinute, out)
	return status, nil
}
