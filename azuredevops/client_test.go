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

package azuredevops

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const listBody = `{
  "value": [
    {
      "pullRequestId": 101,
      "title": "Add retry to uploader",
      "status": "completed",
      "creationDate": "2026-08-01T08:00:00Z",
      "closedDate": "2026-08-02T20:00:00Z",
      "reviewers": [
        {"displayName": "Alex Doe"},
        {"displayName": "Sam Lee"}
      ]
    },
    {
      "pullRequestId": 102,
      "title": "Fix parser crash",
      "status": "completed",
      "creationDate": "2026-08-03T10:00:00Z",
      "closedDate": "2026-08-03T16:00:00Z",
      "reviewers": []
    }
  ],
  "count": 2
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, NewClient(server.URL, "myproject", "secret-pat")
}

func TestCompletedPullRequests(t *testing.T) {
	var requestedPath string
	var authHeader string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		authHeader = r.Header.Get("Authorization")
		if r.URL.Query().Get("searchCriteria.status") != "completed" {
			t.Errorf("wrong status filter: %s", r.URL.RawQuery)
		}
		if r.URL.Query().Get("api-version") != apiVersion {
			t.Errorf("wrong api version: %s", r.URL.RawQuery)
		}
		fmt.Fprint(w, listBody)
	})
	metrics, err := client.CompletedPullRequests()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requestedPath != "/myproject/_apis/git/pullrequests" {
		t.Errorf("wrong path: %s", requestedPath)
	}
	if !strings.HasPrefix(authHeader, "Basic ") {
		t.Errorf("expected basic auth, got %q", authHeader)
	}
	if len(metrics) != 2 {
		t.Fatalf("metrics length: %d, expected: 2", len(metrics))
	}
	first := metrics[0]
	if first.ID != 101 || first.Title != "Add retry to uploader" {
		t.Errorf("unexpected metric: %+v", first)
	}
	if first.LeadTimeHours != 36 {
		t.Errorf("lead time: %v, expected: 36", first.LeadTimeHours)
	}
	if len(first.Reviewers) != 2 || first.Reviewers[0] != "Alex Doe" {
		t.Errorf("unexpected reviewers: %v", first.Reviewers)
	}
	if metrics[1].LeadTimeHours != 6 {
		t.Errorf("lead time: %v, expected: 6", metrics[1].LeadTimeHours)
	}
}

func TestCompletedPullRequestsHTTPError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "TF400813: not authorized", http.StatusUnauthorized)
	})
	_, err := client.CompletedPullRequests()
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestTestConnectivity(t *testing.T) {
	requests := 0
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, `{"value": [], "count": 0}`)
	})
	if err := client.TestConnectivity(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requests != 1 {
		t.Errorf("requests: %d, expected: 1", requests)
	}
}

func TestTestConnectivityBadCredentials(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	if err := client.TestConnectivity(); err == nil {
		t.Fatal("expected an error")
	}
}

func TestWriteMetricsCSV(t *testing.T) {
	closed := time.Date(2026, 8, 2, 20, 0, 0, 0, time.UTC)
	metrics := []PullRequestMetric{
		{
			ID:            101,
			Title:         "Add retry to uploader",
			Status:        "completed",
			CreationDate:  time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC),
			ClosedDate:    &closed,
			LeadTimeHours: 36,
			Reviewers:     []string{"Alex Doe", "Sam Lee"},
		},
	}
	path := filepath.Join(t.TempDir(), "pr_metrics.csv")
	if err := WriteMetricsCSV(metrics, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(contents)), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines: %d, expected: 2", len(lines))
	}
	if lines[0] != "pr_id,title,created,completed,lead_time_hours,reviewers,status" {
		t.Errorf("wrong header: %s", lines[0])
	}
	expected := "101,Add retry to uploader,2026-08-01T08:00:00Z,2026-08-02T20:00:00Z,36.00,Alex Doe;Sam Lee,completed"
	if lines[1] != expected {
		t.Errorf("row: %s, expected: %s", lines[1], expected)
	}
}
