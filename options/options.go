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
	"fmt"
	"os"
)

type ArrayFlags []string

func (i *ArrayFlags) String() string {
	return "array flags"
}

func (i *ArrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

type DupscanOptions struct {
	ScanPath          *string
	Threshold         *string
	OutputDir         *string
	Formats           *string
	IgnoreDirPatterns ArrayFlags
}

type DupscanDefaultValues struct {
	ScanPath  string
	Threshold string
	OutputDir string
	Formats   string
}

var DupscanDefaults = DupscanDefaultValues{
	ScanPath:  ".",
	Threshold: "5",
	OutputDir: "./report/",
	Formats:   "c",
}

func NewDupscanOptions() *DupscanOptions {
	option := &DupscanOptions{}
	option.ScanPath = flag.String("p", DupscanDefaults.ScanPath, "Path to scan for duplicated code")
	option.Threshold = flag.String("t", DupscanDefaults.Threshold, "Minimum token count and duplication percentage threshold, passed to jscpd verbatim")
	option.OutputDir = flag.String("o", DupscanDefaults.OutputDir, "Directory for the console and HTML reports")
	option.Formats = flag.String("f", DupscanDefaults.Formats, "Comma separated list of formats jscpd should scan")
	flag.Var(&option.IgnoreDirPatterns, "ignore_dir", "Shell file name pattern to a directory that will be ignored")
	return option
}

func (o DupscanOptions) GetScanPath() string {
	return *o.ScanPath
}

func (o DupscanOptions) GetThreshold() string {
	return *o.Threshold
}

func (o DupscanOptions) GetOutputDir() string {
	return *o.OutputDir
}

func (o DupscanOptions) GetFormats() string {
	return *o.Formats
}

type ScaOptions struct {
	Standard          *string
	SplintOutput      *string
	ClangtidyOutput   *string
	FlawfinderOutput  *string
	ConfigPath        *string
	IgnoreDirPatterns ArrayFlags
}

type ScaDefaultValues struct {
	Standard         string
	SplintOutput     string
	ClangtidyOutput  string
	FlawfinderOutput string
	ConfigPath       string
}

var ScaDefaults = ScaDefaultValues{
	Standard:         "c11",
	SplintOutput:     "splint_output.txt",
	ClangtidyOutput:  "clang_tidy_output.txt",
	FlawfinderOutput: "flawfinder_output.txt",
	ConfigPath:       "",
}

func NewScaOptions() *ScaOptions {
	option := &ScaOptions{}
	option.Standard = flag.String("s", ScaDefaults.Standard, "C language standard passed to clang-tidy")
	option.SplintOutput = flag.String("o", ScaDefaults.SplintOutput, "Output file for splint")
	option.ClangtidyOutput = flag.String("t", ScaDefaults.ClangtidyOutput, "Output file for clang-tidy")
	option.FlawfinderOutput = flag.String("f", ScaDefaults.FlawfinderOutput, "Output file for flawfinder")
	option.ConfigPath = flag.String("c", ScaDefaults.ConfigPath, "Optional YAML checker config")
	flag.Var(&option.IgnoreDirPatterns, "ignore_dir", "Shell file name pattern to a directory that will be ignored")
	return option
}

func (o ScaOptions) GetStandard() string {
	return *o.Standard
}

func (o ScaOptions) GetSplintOutput() string {
	return *o.SplintOutput
}

func (o ScaOptions) GetClangtidyOutput() string {
	return *o.ClangtidyOutput
}

func (o ScaOptions) GetFlawfinderOutput() string {
	return *o.FlawfinderOutput
}

func (o ScaOptions) GetConfigPath() string {
	return *o.ConfigPath
}

// ParseOrExit parses the command line. Help exits 0 before anything else
// runs; an unknown flag or a flag missing its argument exits 1 (the flag
// package has already written the error to stderr).
func ParseOrExit() {
	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)
	err := flag.CommandLine.Parse(os.Args[1:])
	if err == flag.ErrHelp {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(1)
	}
}

// RequireTarget returns the single positional target argument, or an error
// when it is missing.
func RequireTarget() (string, error) {
	if flag.NArg() < 1 {
		return "", fmt.Errorf("missing target: expected a file or directory to analyze")
	}
	return flag.Arg(0), nil
}
