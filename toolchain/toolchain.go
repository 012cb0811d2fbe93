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

package toolchain

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
)

// Package managers in preference order. The first one found on $PATH wins.
var packageManagers = []string{"apt-get", "yum", "dnf"}

// Distribution package that provides each tool binary.
var packageNames = map[string]string{
	"splint":     "splint",
	"clang-tidy": "clang-tools-extra",
	"flawfinder": "flawfinder",
}

func ResolveBinaryPath(binPath string) (string, error) {
	if filepath.IsAbs(binPath) {
		if _, err := os.Stat(binPath); err != nil {
			return binPath, fmt.Errorf("when resolving %s, os.Stat failed: %v", binPath, err)
		}
		return binPath, nil
	}
	// exec.LookPath will silently allow relative path, so we manually check it.
	if strings.Contains(binPath, string(filepath.Separator)) {
		absBinPath, err := filepath.Abs(binPath)
		if err != nil {
			return binPath, fmt.Errorf("when resolving %s, failed to convert to abs path: %v", binPath, err)
		}
		if _, err := os.Stat(absBinPath); err != nil {
			return absBinPath, fmt.Errorf("when resolving %s, os.Stat failed: %v", binPath, err)
		}
		return absBinPath, nil
	} else {
		if _, err := exec.LookPath(binPath); err != nil {
			return binPath, fmt.Errorf("when resolving %s, not found in $PATH: %v", binPath, err)
		}
		return binPath, nil // The binary is in $PATH, just leave it alone
	}
}

func findPackageManager() string {
	for _, manager := range packageManagers {
		if _, err := exec.LookPath(manager); err == nil {
			return manager
		}
	}
	return ""
}

func installTool(manager, tool string) error {
	pkg, exist := packageNames[tool]
	if !exist {
		pkg = tool
	}
	cmd := exec.Command(manager, "install", "-y", pkg)
	glog.Info("executing: ", cmd.String())
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to install %s with %s:\n%s", pkg, manager, string(out))
	}
	return nil
}

// EnsureInstalled resolves each tool binary, attempting a package-manager
// install for the ones missing from $PATH. It fails when a tool is missing
// and no package manager is available; a failed install is reported but left
// for the later invocation to surface.
func EnsureInstalled(tools []string) error {
	for _, tool := range tools {
		if _, err := ResolveBinaryPath(tool); err == nil {
			glog.Infof("%s found", tool)
			continue
		}
		manager := findPackageManager()
		if manager == "" {
			return fmt.Errorf("required tool %s is missing and no package manager was found", tool)
		}
		glog.Warningf("%s not found, trying to install with %s", tool, manager)
		if err := installTool(manager, tool); err != nil {
			glog.Errorf("installTool: %v", err)
		}
	}
	return nil
}
