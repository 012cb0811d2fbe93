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

// sca runs splint, clang-tidy and flawfinder in sequence over a C file or
// directory, writing each tool's combined output to its own file.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/glog"
	"golang.org/x/exp/slices"

	"github.com/codehealth/codehealth/basic"
	"github.com/codehealth/codehealth/checker"
	"github.com/codehealth/codehealth/checker/clangtidy"
	"github.com/codehealth/codehealth/checker/flawfinder"
	"github.com/codehealth/codehealth/checker/splint"
	"github.com/codehealth/codehealth/config"
	"github.com/codehealth/codehealth/i18n"
	"github.com/codehealth/codehealth/options"
	"github.com/codehealth/codehealth/results"
	"github.com/codehealth/codehealth/srctree"
	"github.com/codehealth/codehealth/stats"
	"github.com/codehealth/codehealth/toolchain"
)

const sourceExt = ".c"

var knownStandards = []string{"c89", "c90", "c99", "c11", "c17", "gnu89", "gnu99", "gnu11", "gnu17"}

var lang = "en"

func main() {
	scaOptions := options.NewScaOptions()
	options.ParseOrExit()
	defer glog.Flush()

	printer := i18n.GetPrinter(lang)

	target, err := options.RequireTarget()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if _, err := os.Stat(target); err != nil {
		fmt.Fprintf(os.Stderr, "cannot analyze %s: %v\n", target, err)
		os.Exit(1)
	}

	// The standard is passed to clang-tidy verbatim either way.
	if !slices.Contains(knownStandards, scaOptions.GetStandard()) {
		glog.Warningf("unrecognized C standard %s", scaOptions.GetStandard())
	}

	cfg, err := config.Load(scaOptions.GetConfigPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ignoreDirPatterns := append(cfg.IgnoreDirPatterns, scaOptions.IgnoreDirPatterns...)

	// Metadata files land next to the splint report.
	resultsDir := filepath.Dir(scaOptions.GetSplintOutput())

	start := time.Now()
	basic.PrintfWithTimeStamp(printer.Sprintf("Checking required analysis tools"))
	stats.WriteProgress(resultsDir, stats.TG, "0%", start)
	requiredTools := []string{cfg.SplintBin, cfg.ClangtidyBin, cfg.FlawfinderBin}
	if err := toolchain.EnsureInstalled(requiredTools); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	stats.WriteProgress(resultsDir, stats.IC, "0%", time.Now())
	includeDirs, err := srctree.CollectIncludeDirs(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to collect include dirs: %v\n", err)
		os.Exit(1)
	}
	glog.Infof("collected %d include dirs under %s", len(includeDirs), target)

	sourceFiles, err := srctree.ListSourceFiles(target, sourceExt, ignoreDirPatterns)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list source files: %v\n", err)
		os.Exit(1)
	}
	if len(sourceFiles) == 0 {
		glog.Warningf("no %s files found under %s", sourceExt, target)
	}

	stats.WriteProgress(resultsDir, stats.AC, "0%", time.Now())
	summaries := []*checker.Summary{}

	basic.PrintfWithTimeStamp(printer.Sprintf("Start running splint"))
	splintOut, err := checker.CreateOutputFile(scaOptions.GetSplintOutput())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	splintSummary := splint.Exec(cfg.SplintBin, sourceFiles, includeDirs,
		config.SplitArgs(cfg.SplintExtraArgs), splintOut, cfg.TimeoutMinutes)
	splintOut.Close()
	splintSummary.Report(printer)
	summaries = append(summaries, splintSummary)
	stats.WriteProgress(resultsDir, stats.AC, basic.GetPercentString(1, 3), time.Now())

	basic.PrintfWithTimeStamp(printer.Sprintf("Start running clang-tidy"))
	clangtidyOut, err := checker.CreateOutputFile(scaOptions.GetClangtidyOutput())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	clangtidyResults, clangtidySummary := clangtidy.Exec(cfg.ClangtidyBin,
		scaOptions.GetStandard(), sourceFiles, includeDirs,
		config.SplitArgs(cfg.ClangtidyExtraArgs), clangtidyOut, cfg.TimeoutMinutes)
	clangtidyOut.Close()
	clangtidySummary.Report(printer)
	summaries = append(summaries, clangtidySummary)
	allResults := results.NewResultsSetFromList(clangtidyResults)
	stats.WriteProgress(resultsDir, stats.AC, basic.GetPercentString(2, 3), time.Now())

	basic.PrintfWithTimeStamp(printer.Sprintf("Start running flawfinder"))
	flawfinderOut, err := checker.CreateOutputFile(scaOptions.GetFlawfinderOutput())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	flawfinderResults, flawfinderSummary := flawfinder.Exec(cfg.FlawfinderBin,
		sourceFiles, nil, flawfinderOut, cfg.TimeoutMinutes)
	flawfinderOut.Close()
	flawfinderSummary.Report(printer)
	summaries = append(summaries, flawfinderSummary)
	allResults.AddList(flawfinderResults)
	stats.WriteProgress(resultsDir, stats.AC, basic.GetPercentString(3, 3), time.Now())

	results.SortResults(&allResults.ResultsList)
	results.AddID(&allResults.ResultsList)
	resultsPath := filepath.Join(resultsDir, "results.json")
	err = results.WriteJsonResults(&allResults.ResultsList, resultsPath)
	if err != nil {
		glog.Errorf("failed to write results: %v", err)
	}
	results.PrintResults(&allResults.ResultsList, true)
	stats.CountSeverityAndWrite(&allResults.ResultsList, resultsDir)

	loc, err := srctree.CountLinesUnderDir(sourceFiles, []string{"C", "C Header"}, ignoreDirPatterns)
	if err != nil {
		glog.Errorf("failed to count lines: %v", err)
	} else {
		stats.WriteLOC(resultsDir, loc)
	}

	stats.WriteProgress(resultsDir, stats.END, "100%", time.Now())
	elapsed := basic.FormatTimeDuration(time.Since(start))
	basic.PrintfWithTimeStamp(printer.Sprintf("Total time for analysis: %s", elapsed))

	failures := 0
	for _, summary := range summaries {
		failures += summary.Failures
	}
	if failures > 0 {
		basic.PrintfWithTimeStamp(printer.Sprintf("%d tool invocation(s) failed to execute", failures))
		glog.Flush()
		os.Exit(1)
	}
}
