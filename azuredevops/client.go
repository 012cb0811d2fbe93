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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/codehealth/codehealth/atomic"
)

const (
	apiVersion = "7.0"
	maxRetries = 3
	retryDelay = 5 * time.Second
)

type Reviewer struct {
	DisplayName string `json:"displayName"`
}

type PullRequest struct {
	PullRequestID int        `json:"pullRequestId"`
	Title         string     `json:"title"`
	Status        string     `json:"status"`
	CreationDate  time.Time  `json:"creationDate"`
	ClosedDate    *time.Time `json:"closedDate"`
	Reviewers     []Reviewer `json:"reviewers"`
}

type pullRequestList struct {
	Value []PullRequest `json:"value"`
	Count int           `json:"count"`
}

type PullRequestMetric struct {
	ID            int
	Title         string
	Status        string
	CreationDate  time.Time
	ClosedDate    *time.Time
	LeadTimeHours float64
	Reviewers     []string
}

type Client struct {
	orgURL  string
	project string
	pat     string
	client  *http.Client
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			TLSHandshakeTimeout:   retryDelay,
			DisableKeepAlives:     true,
			MaxIdleConns:          1,
			MaxConnsPerHost:       1,
			IdleConnTimeout:       1 * time.Millisecond,
			ResponseHeaderTimeout: retryDelay,
		},
		Timeout: 30 * time.Second,
	}
}

func NewClient(orgURL, project, pat string) *Client {
	return &Client{
		orgURL:  strings.TrimSuffix(orgURL, "/"),
		project: project,
		pat:     pat,
		client:  newHTTPClient(),
	}
}

func (c *Client) pullRequestsURL(status string) string {
	query := url.Values{}
	query.Set("searchCriteria.status", status)
	query.Set("api-version", apiVersion)
	return fmt.Sprintf("%s/%s/_apis/git/pullrequests?%s", c.orgURL, url.PathEscape(c.project), query.Encode())
}

func (c *Client) get(requestURL string) ([]byte, error) {
	req, err := http.NewRequest("GET", requestURL, nil)
	if err != nil {
		return nil, err
	}
	// Azure DevOps PATs ride in as basic auth with an empty user name.
	req.SetBasicAuth("", c.pat)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("resp status %d %s", resp.StatusCode, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) getWithRetries(requestURL string) ([]byte, error) {
	retryCount := 0
	for {
		body, err := c.get(requestURL)
		c.client.CloseIdleConnections()
		if err == nil {
			return body, nil
		}

		// Create a new client if an error occurred.
		c.client = newHTTPClient()

		retryCount++
		if retryCount >= maxRetries {
			return nil, err
		}
		glog.Warningf("request to %s failed, retrying: %v", requestURL, err)
		time.Sleep(retryDelay)
	}
}

// CompletedPullRequests fetches the project's completed pull requests and
// derives the lead time from creation to close for each.
func (c *Client) CompletedPullRequests() ([]PullRequestMetric, error) {
	body, err := c.getWithRetries(c.pullRequestsURL("completed"))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pull requests: %v", err)
	}
	var list pullRequestList
	err = json.Unmarshal(body, &list)
	if err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %v", err)
	}
	metrics := make([]PullRequestMetric, 0, len(list.Value))
	for _, pr := range list.Value {
		metric := PullRequestMetric{
			ID:           pr.PullRequestID,
			Title:        pr.Title,
			Status:       pr.Status,
			CreationDate: pr.CreationDate,
			ClosedDate:   pr.ClosedDate,
		}
		if pr.ClosedDate != nil {
			metric.LeadTimeHours = pr.ClosedDate.Sub(pr.CreationDate).Hours()
		}
		for _, reviewer := range pr.Reviewers {
			metric.Reviewers = append(metric.Reviewers, reviewer.DisplayName)
		}
		metrics = append(metrics, metric)
	}
	return metrics, nil
}

// TestConnectivity probes the pull request API once, without retries.
func (c *Client) TestConnectivity() error {
	_, err := c.get(c.pullRequestsURL("completed"))
	if err != nil {
		return fmt.Errorf("failed to connect to Azure DevOps: %v", err)
	}
	return nil
}

// WriteMetricsCSV saves the pull request metrics.
func WriteMetricsCSV(metrics []PullRequestMetric, outputPath string) error {
	header := []string{"pr_id", "title", "created", "completed", "lead_time_hours", "reviewers", "status"}
	rows := make([][]string, 0, len(metrics))
	for _, metric := range metrics {
		completed := ""
		if metric.ClosedDate != nil {
			completed = metric.ClosedDate.UTC().Format(time.RFC3339)
		}
		rows = append(rows, []string{
			strconv.Itoa(metric.ID),
			metric.Title,
			metric.CreationDate.UTC().Format(time.RFC3339),
			completed,
			strconv.FormatFloat(metric.LeadTimeHours, 'f', 2, 64),
			strings.Join(metric.Reviewers, ";"),
			metric.Status,
		})
	}
	return atomic.WriteCSV(outputPath, header, rows)
}
