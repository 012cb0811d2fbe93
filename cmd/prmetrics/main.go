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

// prmetrics exports pull request lead times from Azure DevOps as a CSV file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/codehealth/codehealth/azuredevops"
	"github.com/codehealth/codehealth/basic"
	"github.com/codehealth/codehealth/options"
)

var (
	orgURL           = flag.String("org_url", "", "organization URL, e.g. https://dev.azure.com/myorg")
	project          = flag.String("project", "", "project name")
	pat              = flag.String("pat", "", "personal access token")
	outputPath       = flag.String("out", "pr_metrics.csv", "output CSV path")
	testConnectivity = flag.Bool("test_connectivity", false, "verify credentials and exit")
)

func main() {
	options.ParseOrExit()
	defer glog.Flush()

	if *orgURL == "" || *project == "" || *pat == "" {
		fmt.Fprintln(os.Stderr, "missing required flags: -org_url, -project and -pat must all be set")
		os.Exit(1)
	}

	client := azuredevops.NewClient(*orgURL, *project, *pat)
	if *testConnectivity {
		if err := client.TestConnectivity(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		basic.PrintfWithTimeStamp(fmt.Sprintf("Connected to %s/%s", *orgURL, *project))
		return
	}

	metrics, err := client.CompletedPullRequests()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := azuredevops.WriteMetricsCSV(metrics, *outputPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	basic.PrintfWithTimeStamp(fmt.Sprintf("Wrote %d pull requests to %s", len(metrics), *outputPath))
}
