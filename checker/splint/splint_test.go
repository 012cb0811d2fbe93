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
	"bytes"
	"reflect"
	"testing"
)

func TestBuildArgs(t *testing.T) {
	for _, testCase := range [...]struct {
		name        string
		sourceFile  string
		includeDirs []string
		extraArgs   []string
		expected    []string
	}{
		{
			name:       "bare file",
			sourceFile: "main.c",
			expected:   []string{"main.c"},
		},
		{
			name:        "include dirs before extra args",
			sourceFile:  "src/parser.c",
			includeDirs: []string{"include", "src"},
			extraArgs:   []string{"+bounds", "-weak"},
			expected:    []string{"-Iinclude", "-Isrc", "+bounds", "-weak", "src/parser.c"},
		},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			args := BuildArgs(testCase.sourceFile, testCase.includeDirs, testCase.extraArgs)
			if !reflect.DeepEqual(args, testCase.expected) {
				t.Errorf("args: %v, expected: %v", args, testCase.expected)
			}
		})
	}
}

func TestExecStatusClassification(t *testing.T) {
	var out bytes.Buffer
	// "true" exits zero, "false" exits non-zero, the third binary does not
	// exist. One invocation per source file.
	summary := Exec("true", []string{"a.c", "b.c"}, nil, nil, &out, 0)
	if summary.Invocations != 2 || summary.Findings != 0 || summary.Failures != 0 {
		t.Errorf("unexpected summary for clean runs: %+v", summary)
	}
	summary = Exec("false", []string{"a.c"}, nil, nil, &out, 0)
	if summary.Invocations != 1 || summary.Findings != 1 || summary.Failures != 0 {
		t.Errorf("unexpected summary for findings: %+v", summary)
	}
	summary = Exec("/nonexistent/splint", []string{"a.c"}, nil, nil, &out, 0)
	if summary.Invocations != 1 || summary.Failures != 1 {
		t.Errorf("unexpected summary for execution failure: %+v", summary)
	}
}
