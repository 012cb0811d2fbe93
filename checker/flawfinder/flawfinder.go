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

package flawfinder

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

// flawfinder hit lines look like
//
//	src/main.c:12:  [4] (buffer) strcpy: Does not check for buffer overflows.
var hitRe = regexp.MustCompile(`(?m)^(.+):(\d+):\s+\[(\d)\] (.*)$`)

// flawfinder risk levels run 0 (none) to 5 (highest).
func severityFromRiskLevel(level int) int32 {
	switch level {
	case 5:
		return results.Highest
	case 4:
		return results.High
	case 3:
		return results.Medium
	case 2:
		return results.Low
	case 1:
		return results.Lowest
	default:
		return results.Unknown
	}
}

func parseHits(out []byte, resultsList *results.ResultsList) {
	matches := hitRe.FindAllStringSubmatch(string(out), -1)
	for _, match := range matches {
		linenum, err := strconv.Atoi(match[2])
		if err != nil {
			glog.Errorf("flawfinder output cannot be parsed: %v", err)
			continue
		}
		level, err := strconv.Atoi(match[3])
		if err != nil {
			glog.Errorf("flawfinder output cannot be parsed: %v", err)
			continue
		}
		resultsList.Results = append(resultsList.Results, &results.Result{
			Path:         match[1],
			LineNumber:   int32(linenum),
			Checker:      "flawfinder",
			ErrorMessage: match[4],
			Severity:     severityFromRiskLevel(level),
		})
	}
}

// Exec runs flawfinder once per source file, appending each invocation's
// combined output to out and collecting the hits into a results list.
// flawfinder does not take include directories; it scans sources lexically.
func Exec(flawfinderBin string, sourceFiles, extraArgs []string, out io.Writer, timeoutMinute int) (*results.ResultsList, *checker.Summary) {
	summary := &checker.Summary{Tool: "flawfinder"}
	resultsList := &results.ResultsList{}
	for _, sourceFile := range sourceFiles {
		args := append(append([]string{}, extraArgs...), sourceFile)
		cmd := exec.Command(flawfinderBin, args...)
		glog.Info("executing: ", cmd.String())
		output, err := basic.CombinedOutput(cmd, "flawfinder", nil, timeoutMinute)
		if _, werr := out.Write(output); werr != nil {
			glog.Errorf("failed to write flawfinder output: %v", werr)
		}
		switch err.(type) {
		case nil:
			parseHits(output, resultsList)
			summary.Add(checker.OK)
		case *exec.ExitError:
			parseHits(output, resultsList)
			summary.Add(checker.Findings)
		default:
			glog.Errorf("flawfinder execution error: executing: %s, reported:\n%s", cmd.String(), string(output))
			summary.Add(checker.Failed)
		}
	}
	return resultsList, summary
}
