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

package results

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/golang/glog"
	"github.com/google/uuid"
)

// Severity levels, highest first.
const (
	Unknown int32 = iota
	Highest
	High
	Medium
	Low
	Lowest
)

type Result struct {
	Id           string `json:"id,omitempty"`
	Path         string `json:"path"`
	LineNumber   int32  `json:"line_number"`
	Checker      string `json:"checker"`
	ErrorMessage string `json:"error_message"`
	Severity     int32  `json:"severity,omitempty"`
}

type ResultsList struct {
	Results []*Result `json:"results"`
}

type resultBlood struct {
	path         string
	lineNumber   int32
	errorMessage string
}

// ResultsSet is an alternative to ResultsList. When Add() is called, it
// checks resultBlood to identify unique Results. It preserves Results'
// adding order.
type ResultsSet struct {
	// You can manipulate ResultsList beyond the limits.
	ResultsList
	stored map[resultBlood]struct{}
}

func NewResultsSet() *ResultsSet {
	set := ResultsSet{}
	set.stored = make(map[resultBlood]struct{})
	return &set
}

func NewResultsSetFromList(list *ResultsList) *ResultsSet {
	set := NewResultsSet()
	set.AddList(list)
	return set
}

func (rs *ResultsSet) Add(r *Result) {
	blood := resultBlood{
		path:         r.Path,
		lineNumber:   r.LineNumber,
		errorMessage: r.ErrorMessage,
	}
	if _, reported := rs.stored[blood]; !reported {
		rs.stored[blood] = struct{}{}
		rs.Results = append(rs.Results, r)
	}
}

func (rs *ResultsSet) AddList(list *ResultsList) {
	for _, r := range list.Results {
		rs.Add(r)
	}
}

func AddID(allResults *ResultsList) {
	for i := 0; i < len(allResults.Results); i++ {
		id, err := uuid.NewRandom()
		if err != nil {
			glog.Warningf("uuid.NewRandom: %v", err)
			continue
		}
		allResults.Results[i].Id = id.String()
	}
}

func SortResults(allResults *ResultsList) {
	results := allResults.Results
	sort.Slice(results, func(i, j int) bool {
		x := results[i]
		y := results[j]
		if x.Path < y.Path {
			return true
		}
		if x.Path > y.Path {
			return false
		}
		if x.LineNumber < y.LineNumber {
			return true
		}
		if x.LineNumber > y.LineNumber {
			return false
		}
		return x.ErrorMessage < y.ErrorMessage
	})
}

func WriteJsonResults(allResults *ResultsList, resultsPath string) error {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	err := enc.Encode(allResults)
	if err != nil {
		return fmt.Errorf("enc.Encode: %v", err)
	}
	err = os.WriteFile(resultsPath, buf.Bytes(), os.ModePerm)
	if err != nil {
		return fmt.Errorf("failed to write %s: %v", resultsPath, err)
	}
	return nil
}

func PrintResults(allResults *ResultsList, printCounts bool) {
	result_count_map := map[string]int{}
	SortResults(allResults)
	for _, result := range allResults.Results {
		fmt.Printf("%s:%d: %s\n\n", result.Path, result.LineNumber, result.ErrorMessage)
		result_count_map[result.ErrorMessage]++
	}
	if printCounts {
		for errorMessage, count := range result_count_map {
			fmt.Printf("count: %d error message: %s\n", count, errorMessage)
		}
	}
}
