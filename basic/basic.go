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

/*
This package should not import any other packages of the toolkit to
avoid recursive import.
*/
package basic

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/golang/glog"
)

type combinedOutput struct {
	Output []byte
	Error  error
}

func PrintfWithTimeStamp(format string, arg ...any) {
	prefix := fmt.Sprintf("%v ", time.Now().Format("2006-01-02 15:04:05"))
	message := fmt.Sprintf(prefix+format, arg...)
	fmt.Println(message)
	glog.Info(message)
}

func GetPercentString(v1, v2 int) string {
	percent := (int)((v1 * 100) / v2)
	return fmt.Sprintf("%d%%", percent)
}

func FormatTimeDuration(d time.Duration) string {
	s := d / time.Second
	d -= s * time.Second
	ms := d / time.Millisecond
	if ms == 0 {
		return fmt.Sprintf("%ds", s)
	}
	ms = ms % time.Microsecond
	for ms%10 == 0 && ms != 0 {
		ms = ms / 10
	}
	return fmt.Sprintf("%d.%ds", s, ms)
}

// Based on the implementation of exec.Cmd.CombinedOutput, with the extra
// environment entries applied before the command starts.
func getCombinedOutput(c *exec.Cmd, extraEnv []string) combinedOutput {
	if len(extraEnv) > 0 {
		c.Env = append(os.Environ(), extraEnv...)
	}
	if c.Stdout != nil {
		return combinedOutput{Output: nil, Error: errors.New("exec: Stdout already set")}
	}
	if c.Stderr != nil {
		return combinedOutput{Output: nil, Error: errors.New("exec: Stderr already set")}
	}
	var b bytes.Buffer
	c.Stdout = &b
	c.Stderr = &b
	err := c.Run()
	return combinedOutput{Output: b.Bytes(), Error: err}
}

func runWithTimeout(c *exec.Cmd, taskName string, extraEnv []string, timeout time.Duration) ([]byte, error) {
	result := make(chan combinedOutput, 1)
	go func() {
		result <- getCombinedOutput(c, extraEnv)
	}()
	select {
	case <-time.After(timeout):
		// The process is nil until the goroutine's Run has started it.
		if c.Process != nil {
			if err := c.Process.Kill(); err != nil {
				return nil, fmt.Errorf("failed to kill %v: %v", c.Process.Pid, err)
			}
		}
		return nil, fmt.Errorf("%v timed out: over %v", taskName, timeout)
	case result := <-result:
		return result.Output, result.Error
	}
}

// CombinedOutput runs c and returns its combined stdout and stderr. A
// positive timeoutMinute kills the command after that many minutes.
func CombinedOutput(c *exec.Cmd, taskName string, extraEnv []string, timeoutMinute int) ([]byte, error) {
	if timeoutMinute <= 0 {
		result := getCombinedOutput(c, extraEnv)
		return result.Output, result.Error
	}
	return runWithTimeout(c, taskName, extraEnv, time.Duration(timeoutMinute)*time.Minute)
}

