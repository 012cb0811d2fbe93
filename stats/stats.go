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

package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/golang/glog"

	"github.com/codehealth/codehealth/atomic"
	"github.com/codehealth/codehealth/results"
)

// analysis stages
const (
	TG  int = iota // Tool availability guard
	IC             // Include directory collection
	AC             // Analysis check
	END
)

type Progress struct {
	StageID   int       `json:"stage_id"`
	DoneRatio string    `json:"done_ratio"`
	StartedAt time.Time `json:"started_at"`
}

type SeverityCount struct {
	Highest int `json:"highest"`
	High    int `json:"high"`
	Medium  int `json:"medium"`
	Low     int `json:"low"`
	Lowest  int `json:"lowest"`
	Unknown int `json:"unknown"`
}

func WriteLOC(resultDir string, linesCounter int) {
	path := filepath.Join(resultDir, "loc.ch_metadata")
	err := atomic.Write(path, []byte(strconv.Itoa(linesCounter)))
	if err != nil {
		glog.Errorf("failed to write to file %s: %v", path, err)
	}
}

func WriteProgress(resultDir string, stageID int, doneRatio string, startedAt time.Time) {
	// skip writing it if resultDir does not exist
	_, err := os.Stat(resultDir)
	if os.IsNotExist(err) {
		glog.Warningf("result dir %s does not exist", resultDir)
		return
	}
	path := filepath.Join(resultDir, "progress.ch_metadata")
	progress, err := json.Marshal(Progress{StageID: stageID, DoneRatio: doneRatio, StartedAt: startedAt})
	if err != nil {
		glog.Errorf("failed to marshal json stageID %d and doneRatio %s: %v", stageID, doneRatio, err)
		return
	}
	err = atomic.Write(path, progress)
	if err != nil {
		glog.Errorf("failed to write to file %s: %v", path, err)
	}
}

func AccumulateBySeverity(cnt *SeverityCount, resultSeverity int32) {
	switch resultSeverity {
	case results.Highest:
		cnt.Highest++
	case results.High:
		cnt.High++
	case results.Medium:
		cnt.Medium++
	case results.Low:
		cnt.Low++
	case results.Lowest:
		cnt.Lowest++
	default:
		cnt.Unknown++
	}
}

func CountSeverityAndWrite(allResults *results.ResultsList, resultDir string) {
	cnt := SeverityCount{}
	for _, result := range allResults.Results {
		AccumulateBySeverity(&cnt, result.Severity)
	}
	path := filepath.Join(resultDir, "severity_stats.ch_metadata")
	contents, err := json.Marshal(cnt)
	if err != nil {
		glog.Errorf("failed to marshal severity count: %v", err)
		return
	}
	err = atomic.Write(path, contents)
	if err != nil {
		glog.Errorf("failed to write to file %s: %v", path, err)
	}
}
