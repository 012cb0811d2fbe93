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

package checker

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/golang/glog"
	"golang.org/x/text/message"

	"github.com/codehealth/codehealth/basic"
)

// Status classifies one tool invocation.
type Status int

const (
	// The tool ran and exited zero.
	OK Status = iota
	// The tool ran to completion but exited non-zero. splint and flawfinder
	// do this when they diagnose the code under analysis, so it is recorded
	// rather than treated as a failure.
	Findings
	// The tool did not run to completion.
	Failed
)

// Summary accumulates invocation outcomes for one tool.
type Summary struct {
	Tool        string
	Invocations int
	Findings    int
	Failures    int
}

func (s *Summary) Add(status Status) {
	s.Invocations++
	switch status {
	case Findings:
		s.Findings++
	case Failed:
		s.Failures++
	}
}

func (s *Summary) Report(printer *message.Printer) {
	basic.PrintfWithTimeStamp(printer.Sprintf(
		"%s completed (%d invocations, %d with findings, %d failed)",
		s.Tool, s.Invocations, s.Findings, s.Failures))
}

// RunToFile runs cmd and appends its combined stdout and stderr to out. The
// returned status distinguishes a non-zero tool exit from an execution
// failure; the subprocess exit status is never swallowed.
func RunToFile(cmd *exec.Cmd, taskName string, extraEnv []string, timeoutMinute int, out io.Writer) Status {
	glog.Info("executing: ", cmd.String())
	output, err := basic.CombinedOutput(cmd, taskName, extraEnv, timeoutMinute)
	if _, werr := out.Write(output); werr != nil {
		glog.Errorf("failed to write output of %s: %v", taskName, werr)
	}
	if err == nil {
		return OK
	}
	if exitError, ok := err.(*exec.ExitError); ok {
		glog.Infof("%s exited with status %d", cmd.String(), exitError.ExitCode())
		return Findings
	}
	glog.Errorf("%s execution error: %v", cmd.String(), err)
	return Failed
}

// CreateOutputFile truncates and opens the output file of one tool, so a
// repeated run overwrites the previous report instead of appending to it.
func CreateOutputFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %v", path, err)
	}
	return f, nil
}
