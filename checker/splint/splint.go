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

package splint

import (
	"io"
	"os/exec"

	"github.com/codehealth/codehealth/checker"
)

// BuildArgs assembles one splint invocation for a single source file.
func BuildArgs(sourceFile string, includeDirs, extraArgs []string) []string {
	args := []string{}
	for _, dir := range includeDirs {
		args = append(args, "-I"+dir)
	}
	args = append(args, extraArgs...)
	return append(args, sourceFile)
}

// Exec runs splint once per source file, appending each invocation's
// combined output to out. splint exits non-zero whenever it reports code
// issues, so that case counts as findings, not failure.
func Exec(splintBin string, sourceFiles, includeDirs, extraArgs []string, out io.Writer, timeoutMinute int) *checker.Summary {
	summary := &checker.Summary{Tool: "splint"}
	for _, sourceFile := range sourceFiles {
		cmd := exec.Command(splintBin, BuildArgs(sourceFile, includeDirs, extraArgs)...)
		summary.Add(checker.RunToFile(cmd, "splint", nil, timeoutMinute, out))
	}
	return summary
}
