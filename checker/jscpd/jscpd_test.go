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
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/codehealth/codehealth/checker"
)

func TestBuildArgs(t *testing.T) {
	for _, testCase := range [...]struct {
		name              string
		scanPath          string
		threshold         string
		outputDir         string
		formats           string
		ignoreDirPatterns []string
		expected          []string
	}{
		{
			name:      "defaults",
			scanPath:  ".",
			threshold: "5",
			outputDir: "./report/",
			formats:   "c",
			expected: []string{
				"--min-tokens", "5",
				"--threshold", "5",
				"--format", "c",
				"--output", "./report/",
				"--reporters", "console,html",
				".",
			},
		},
		{
			name:              "ignore patterns joined",
			scanPath:          "src",
			threshold:         "10",
			outputDir:         "out",
			formats:           "c,javascript",
			ignoreDirPatterns: []string{"**/vendor/**", "**/build/**"},
			expected: []string{
				"--min-tokens", "10",
				"--threshold", "10",
				"--format", "c,javascript",
				"--output", "out",
				"--reporters", "console,html",
				"--ignore", "**/vendor/**,**/build/**",
				"src",
			},
		},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			args := BuildArgs(testCase.scanPath, testCase.threshold, testCase.outputDir,
				testCase.formats, testCase.ignoreDirPatterns)
			if !reflect.DeepEqual(args, testCase.expected) {
				t.Errorf("args: %v, expected: %v", args, testCase.expected)
			}
		})
	}
}

func TestExecCreatesOutput(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "report")
	// "echo" stands in for jscpd; Exec only cares about the exit status and
	// the captured output.
	status, err := Exec("echo", ".", "5", outputDir, "c", nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != checker.OK {
		t.Errorf("status: %v, expected: %v", status, checker.OK)
	}
	if _, err := os.Stat(filepath.Join(outputDir, OutputFileName)); err != nil {
		t.Errorf("expected output file: %v", err)
	}
}

func TestExecMissingBinary(t *testing.T) {
	outputDir := t.TempDir()
	status, err := Exec("/nonexistent/jscpd", ".", "5", outputDir, "c", nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != checker.Failed {
		t.Errorf("status: %v, expected: %v", status, checker.Failed)
	}
}
