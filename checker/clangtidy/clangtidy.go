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

package clangtidy

import (
	"io"
	"os/exec"
	"regexp"
	"strconv"

	"github.com/golang/glog"

	"github.com/codehealth/codehealth/basic"
	"github.com/codehealth/codehealth/checker"
	"github.com/codehealth/codehealth/results"
)

var diagnosticRe = regexp.MustCompile(`(?m)^(.+):(\d+):(\d+): (error|warning|note): (.*?)( \[[^\[\]]+\])?$`)

var severityMap = map[string]int32{
	"error":   results.High,
	"warning": results.Medium,
	"note":    results.Lowest,
}

// BuildArgs assembles one clang-tidy invocation. There is no compilation
// database for a bare file or directory target, so include directories and
// the language standard ride in through --extra-arg, and the trailing "--"
// keeps clang-tidy from looking for compile_commands.json.
func BuildArgs(sourceFile, standard string, includeDirs, extraArgs []string) []string {
	args := []string{sourceFile}
	if standard != "" {
		args = append(args, "--extra-arg=-std="+standard)
	}
	for _, dir := range includeDirs {
		args = append(args, "--extra-arg=-I"+dir)
	}
	args = append(args, extraArgs...)
	return append(args, "--")
}

func parseDiagnostics(out []byte, resultsList *results.ResultsList) {
	matches := diagnosticRe.FindAllStringSubmatch(string(out), -1)
	for _, match := range matches {
		linenum, err := strconv.Atoi(match[2])
		if err != nil {
			glog.Errorf("clang-tidy output cannot be parsed: %v", err)
			continue
		}
		resultsList.Results = append(resultsList.Results, &results.Result{
			Path:         match[1],
			LineNumber:   int32(linenum),
			Checker:      "clang-tidy",
			ErrorMessage: match[5],
			Severity:     severityMap[match[4]],
		})
	}
}

// Exec runs clang-tidy once per source file. Each invocation's combined
// output goes to out verbatim and is additionally parsed into resultsList.
func Exec(clangtidyBin, standard string, sourceFiles, includeDirs, extraArgs []string, out io.Writer, timeoutMinute int) (*results.ResultsList, *checker.Summary) {
	summary := &checker.Summary{Tool: "clang-tidy"}
	resultsList := &results.ResultsList{}
	for _, sourceFile := range sourceFiles {
		cmd := exec.Command(clangtidyBin, BuildArgs(sourceFile, standard, includeDirs, extraArgs)...)
		glog.Info("executing: ", cmd.String())
		output, err := basic.CombinedOutput(cmd, "clang-tidy", nil, timeoutMinute)
		if _, werr := out.Write(output); werr != nil {
			glog.Errorf("failed to write clang-tidy output: %v", werr)
		}
		if err == nil {
			parseDiagnostics(output, resultsList)
			summary.Add(checker.OK)
			continue
		}
		if exitError, ok := err.(*exec.ExitError); ok {
			// clang-tidy exits non-zero when it emits errors; the
			// diagnostics are still in the output.
			glog.Infof("clang-tidy exited with status %d for %s", exitError.ExitCode(), sourceFile)
			parseDiagnostics(output, resultsList)
			summary.Add(checker.Findings)
			continue
		}
		glog.Errorf("clang-tidy execution error: executing: %s, reported:\n%s", cmd.String(), string(output))
		summary.Add(checker.Failed)
	}
	return resultsList, summary
}
