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

package config

import (
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/google/shlex"
	"gopkg.in/yaml.v2"
)

// CheckerConfig carries the optional per-run checker settings. All fields
// are optional; zero values mean the built-in defaults.
type CheckerConfig struct {
	SplintBin          string `yaml:"splint_bin"`
	ClangtidyBin       string `yaml:"clangtidy_bin"`
	FlawfinderBin      string `yaml:"flawfinder_bin"`
	JscpdBin           string `yaml:"jscpd_bin"`
	SplintExtraArgs    string `yaml:"splint_extra_args"`
	ClangtidyExtraArgs string `yaml:"clangtidy_extra_args"`
	TimeoutMinutes     int    `yaml:"timeout_minutes"`

	IgnoreDirPatterns []string `yaml:"ignore_dir_patterns"`
}

var Defaults = CheckerConfig{
	SplintBin:      "splint",
	ClangtidyBin:   "clang-tidy",
	FlawfinderBin:  "flawfinder",
	JscpdBin:       "jscpd",
	TimeoutMinutes: 90,
}

// Load reads the checker config at path. An empty path returns the defaults.
func Load(path string) (*CheckerConfig, error) {
	cfg := Defaults
	if path == "" {
		return &cfg, nil
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read checker config %s: %v", path, err)
	}
	err = yaml.Unmarshal(contents, &cfg)
	if err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %v", err)
	}
	if cfg.SplintBin == "" {
		cfg.SplintBin = Defaults.SplintBin
	}
	if cfg.ClangtidyBin == "" {
		cfg.ClangtidyBin = Defaults.ClangtidyBin
	}
	if cfg.FlawfinderBin == "" {
		cfg.FlawfinderBin = Defaults.FlawfinderBin
	}
	if cfg.JscpdBin == "" {
		cfg.JscpdBin = Defaults.JscpdBin
	}
	if cfg.TimeoutMinutes == 0 {
		cfg.TimeoutMinutes = Defaults.TimeoutMinutes
	}
	glog.Infof("checker config loaded from %s", path)
	return &cfg, nil
}

// SplitArgs splits an extra-args string the way a shell would. A malformed
// string is reported and treated as empty.
func SplitArgs(raw string) []string {
	if raw == "" {
		return nil
	}
	args, err := shlex.Split(raw)
	if err != nil {
		glog.Warningf("shlex.Split %q: %v", raw, err)
		return nil
	}
	return args
}
