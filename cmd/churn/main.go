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

// churn reports per-commit line churn on a branch as a CSV file.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/codehealth/codehealth/basic"
	"github.com/codehealth/codehealth/gitstats"
	"github.com/codehealth/codehealth/options"
)

const dateLayout = "2006-01-02"

var (
	repoPath   = flag.String("repo", ".", "path to the git repository")
	branchName = flag.String("branch", "", "branch to analyze, defaults to the checked out branch")
	sinceDate  = flag.String("since", "", "start date (YYYY-MM-DD), defaults to 180 days ago")
	untilDate  = flag.String("until", "", "end date (YYYY-MM-DD), defaults to today")
	outputPath = flag.String("out", "", "output CSV path")
)

func parseWindow(since, until string) (time.Time, time.Time, error) {
	now := time.Now()
	sinceTime := now.AddDate(0, 0, -180)
	untilTime := now
	var err error
	if since != "" {
		sinceTime, err = time.Parse(dateLayout, since)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -since date %q: %v", since, err)
		}
	}
	if until != "" {
		untilTime, err = time.Parse(dateLayout, until)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -until date %q: %v", until, err)
		}
		// Include the whole end day.
		untilTime = untilTime.AddDate(0, 0, 1)
	}
	return sinceTime, untilTime, nil
}

func main() {
	options.ParseOrExit()
	defer glog.Flush()

	sinceTime, untilTime, err := parseWindow(*sinceDate, *untilDate)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	branch := *branchName
	if branch == "" {
		branch, err = gitstats.CurrentBranch(*repoPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot determine current branch: %v\n", err)
			os.Exit(1)
		}
	}

	basic.PrintfWithTimeStamp(fmt.Sprintf("Collecting churn on %s from %s to %s",
		branch, sinceTime.Format(dateLayout), untilTime.Format(dateLayout)))
	churns, err := gitstats.CollectChurn(*repoPath, branch, sinceTime, untilTime)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	out := *outputPath
	if out == "" {
		out = fmt.Sprintf("%s_%s_%s_commit_churn.csv",
			strings.ReplaceAll(branch, "/", "_"),
			sinceTime.Format(dateLayout), untilTime.Format(dateLayout))
	}
	if err := gitstats.WriteChurnCSV(churns, out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	basic.PrintfWithTimeStamp(fmt.Sprintf("Wrote %d commits to %s", len(churns), out))
}
