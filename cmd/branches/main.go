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

// branches reports the merge state and age of local branches as a CSV file.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/glog"

	"github.com/codehealth/codehealth/basic"
	"github.com/codehealth/codehealth/gitstats"
	"github.com/codehealth/codehealth/options"
)

const dateLayout = "2006-01-02"

var (
	repoPath   = flag.String("repo", ".", "path to the git repository")
	sinceDate  = flag.String("since", "", "start date (YYYY-MM-DD), defaults to 180 days ago")
	untilDate  = flag.String("until", "", "end date (YYYY-MM-DD), defaults to today")
	outputPath = flag.String("out", "", "output CSV path")
)

func main() {
	options.ParseOrExit()
	defer glog.Flush()

	now := time.Now()
	sinceTime := now.AddDate(0, 0, -180)
	untilTime := now
	var err error
	if *sinceDate != "" {
		sinceTime, err = time.Parse(dateLayout, *sinceDate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -since date %q: %v\n", *sinceDate, err)
			os.Exit(1)
		}
	}
	if *untilDate != "" {
		untilTime, err = time.Parse(dateLayout, *untilDate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -until date %q: %v\n", *untilDate, err)
			os.Exit(1)
		}
		untilTime = untilTime.AddDate(0, 0, 1)
	}

	infos, defaultBranch, err := gitstats.AnalyzeBranches(*repoPath, sinceTime, untilTime)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	glog.Infof("default branch is %s", defaultBranch)

	out := *outputPath
	if out == "" {
		repoBase, err := filepath.Abs(*repoPath)
		if err != nil {
			repoBase = *repoPath
		}
		out = fmt.Sprintf("%s_%s_%s.csv", filepath.Base(repoBase),
			sinceTime.Format(dateLayout), untilTime.Format(dateLayout))
	}
	if err := gitstats.WriteBranchCSV(infos, out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	basic.PrintfWithTimeStamp(fmt.Sprintf("Wrote %d branches to %s", len(infos), out))
}
