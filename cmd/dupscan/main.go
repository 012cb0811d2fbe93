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

// dupscan detects copy-pasted code with jscpd and writes console and HTML
// reports under the chosen output directory.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/codehealth/codehealth/basic"
	"github.com/codehealth/codehealth/checker"
	"github.com/codehealth/codehealth/checker/jscpd"
	"github.com/codehealth/codehealth/config"
	"github.com/codehealth/codehealth/i18n"
	"github.com/codehealth/codehealth/options"
	"github.com/codehealth/codehealth/toolchain"
)

var lang = "en"

func main() {
	dupscanOptions := options.NewDupscanOptions()
	options.ParseOrExit()
	defer glog.Flush()

	printer := i18n.GetPrinter(lang)

	jscpdBin := config.Defaults.JscpdBin
	if _, err := toolchain.ResolveBinaryPath(jscpdBin); err != nil {
		fmt.Fprintf(os.Stderr, "%s is not installed: %v\n", jscpdBin, err)
		os.Exit(1)
	}

	start := time.Now()
	basic.PrintfWithTimeStamp(printer.Sprintf("Start scanning %s for duplication", dupscanOptions.GetScanPath()))
	status, err := jscpd.Exec(jscpdBin,
		dupscanOptions.GetScanPath(),
		dupscanOptions.GetThreshold(),
		dupscanOptions.GetOutputDir(),
		dupscanOptions.GetFormats(),
		dupscanOptions.IgnoreDirPatterns,
		config.Defaults.TimeoutMinutes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	elapsed := basic.FormatTimeDuration(time.Since(start))
	switch status {
	case checker.OK:
		basic.PrintfWithTimeStamp(printer.Sprintf("Scan complete in %s, no duplication above threshold", elapsed))
	case checker.Findings:
		basic.PrintfWithTimeStamp(printer.Sprintf("Scan complete in %s, duplication threshold exceeded", elapsed))
	case checker.Failed:
		basic.PrintfWithTimeStamp(printer.Sprintf("Scan failed after %s", elapsed))
		glog.Flush()
		os.Exit(1)
	}
}
