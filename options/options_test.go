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

package options

import (
	"flag"
	"os"
	"os/exec"
	"reflect"
	"testing"
)

func TestArrayFlags(t *testing.T) {
	var patterns ArrayFlags
	for _, value := range []string{"**/build/**", "**/vendor/**"} {
		if err := patterns.Set(value); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	expected := ArrayFlags{"**/build/**", "**/vendor/**"}
	if !reflect.DeepEqual(patterns, expected) {
		t.Errorf("patterns: %v, expected: %v", patterns, expected)
	}
}

// The dupscan and sca flag sets overlap (-t, -o, -f), so only one constructor
// can register against flag.CommandLine per process; sca has the larger
// surface and is checked here.
func TestNewScaOptionsDefaults(t *testing.T) {
	scaOptions := NewScaOptions()
	if scaOptions.GetStandard() != "c11" {
		t.Errorf("standard: %s, expected: c11", scaOptions.GetStandard())
	}
	if scaOptions.GetSplintOutput() != "splint_output.txt" {
		t.Errorf("splint output: %s", scaOptions.GetSplintOutput())
	}
	if scaOptions.GetClangtidyOutput() != "clang_tidy_output.txt" {
		t.Errorf("clang-tidy output: %s", scaOptions.GetClangtidyOutput())
	}
	if scaOptions.GetFlawfinderOutput() != "flawfinder_output.txt" {
		t.Errorf("flawfinder output: %s", scaOptions.GetFlawfinderOutput())
	}
	if scaOptions.GetConfigPath() != "" {
		t.Errorf("config path: %s, expected empty", scaOptions.GetConfigPath())
	}
	if len(scaOptions.IgnoreDirPatterns) != 0 {
		t.Errorf("ignore patterns should start empty: %v", scaOptions.IgnoreDirPatterns)
	}
}

func TestRequireTarget(t *testing.T) {
	if err := flag.CommandLine.Parse([]string{"src/project"}); err != nil {
		t.Fatal(err)
	}
	target, err := RequireTarget()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target != "src/project" {
		t.Errorf("target: %s, expected: src/project", target)
	}
}

func TestRequireTargetMissing(t *testing.T) {
	if err := flag.CommandLine.Parse([]string{}); err != nil {
		t.Fatal(err)
	}
	_, err := RequireTarget()
	if err == nil {
		t.Fatal("expected an error")
	}
}

// ParseOrExit terminates the process, so the exit-code contract is checked
// from a child copy of the test binary.
func TestParseOrExitStatus(t *testing.T) {
	if arg := os.Getenv("PARSE_OR_EXIT_ARG"); arg != "" {
		os.Args = []string{"sca", arg}
		ParseOrExit()
		os.Exit(0)
	}
	for _, testCase := range [...]struct {
		name     string
		arg      string
		exitCode int
	}{
		{"help exits zero", "-h", 0},
		{"unknown flag exits one", "-no_such_flag", 1},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			cmd := exec.Command(os.Args[0], "-test.run=TestParseOrExitStatus")
			cmd.Env = append(os.Environ(), "PARSE_OR_EXIT_ARG="+testCase.arg)
			err := cmd.Run()
			exitCode := 0
			if exitError, ok := err.(*exec.ExitError); ok {
				exitCode = exitError.ExitCode()
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if exitCode != testCase.exitCode {
				t.Errorf("exit code: %d, expected: %d", exitCode, testCase.exitCode)
			}
		})
	}
}

func TestDupscanDefaults(t *testing.T) {
	if DupscanDefaults.ScanPath != "." || DupscanDefaults.Threshold != "5" {
		t.Errorf("unexpected defaults: %+v", DupscanDefaults)
	}
	if DupscanDefaults.OutputDir != "./report/" || DupscanDefaults.Formats != "c" {
		t.Errorf("unexpected defaults: %+v", DupscanDefaults)
	}
}
