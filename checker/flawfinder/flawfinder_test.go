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

package flawfinder

import (
	"testing"

	"github.com/codehealth/codehealth/results"
)

func TestParseHits(t *testing.T) {
	raw := `Flawfinder version 2.0.19, (C) 2001-2019 David A. Wheeler.
Examining src/main.c

src/main.c:12:  [4] (buffer) strcpy:
  Does not check for buffer overflows when copying to destination [MS-banned]
  (CWE-120).
src/main.c:34:  [2] (buffer) char:
  Statically-sized arrays can be improperly restricted.

ANALYSIS SUMMARY:

Hits = 2
`
	resultsList := &results.ResultsList{}
	parseHits([]byte(raw), resultsList)
	if len(resultsList.Results) != 2 {
		t.Fatalf("wrong results length. parsed: %d, expected: 2.", len(resultsList.Results))
	}
	first := resultsList.Results[0]
	if first.Path != "src/main.c" {
		t.Errorf("wrong path: %s", first.Path)
	}
	if first.LineNumber != 12 {
		t.Errorf("wrong line number: %d", first.LineNumber)
	}
	if first.ErrorMessage != "(buffer) strcpy:" {
		t.Errorf("wrong message: %s", first.ErrorMessage)
	}
	if first.Severity != results.High {
		t.Errorf("wrong severity: %d", first.Severity)
	}
	if first.Checker != "flawfinder" {
		t.Errorf("wrong checker: %s", first.Checker)
	}
	second := resultsList.Results[1]
	if second.LineNumber != 34 {
		t.Errorf("wrong line number: %d", second.LineNumber)
	}
	if second.Severity != results.Low {
		t.Errorf("wrong severity: %d", second.Severity)
	}
}

func TestSeverityFromRiskLevel(t *testing.T) {
	for level, expected := range map[int]int32{
		5:  results.Highest,
		4:  results.High,
		3:  results.Medium,
		2:  results.Low,
		1:  results.Lowest,
		0:  results.Unknown,
		-1: results.Unknown,
	} {
		if got := severityFromRiskLevel(level); got != expected {
			t.Errorf("level %d: severity %d, expected %d", level, got, expected)
		}
	}
}
