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

package gitstats

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/golang/glog"
	git2go "github.com/libgit2/git2go/v33"

	"github.com/codehealth/codehealth/atomic"
)

type CommitChurn struct {
	CommitID string
	Date     time.Time
	Message  string
	Added    int
	Removed  int
	Modified int
}

func branchTip(repo *git2go.Repository, branch string) (*git2go.Oid, error) {
	if branch == "" {
		head, err := repo.Head()
		if err != nil {
			return nil, fmt.Errorf("repo.Head failed: %v", err)
		}
		return head.Target(), nil
	}
	ref, err := repo.LookupBranch(branch, git2go.BranchLocal)
	if err != nil {
		return nil, fmt.Errorf("git2go.LookupBranch failed for %s: %v", branch, err)
	}
	return ref.Target(), nil
}

func commitTree(commit *git2go.Commit) (*git2go.Tree, error) {
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("commit.Tree failed for %s: %v", commit.Id(), err)
	}
	return tree, nil
}

func diffLineStats(repo *git2go.Repository, oldTree, newTree *git2go.Tree) (int, int, error) {
	opts, err := git2go.DefaultDiffOptions()
	if err != nil {
		return 0, 0, fmt.Errorf("git2go.DefaultDiffOptions failed: %v", err)
	}
	diff, err := repo.DiffTreeToTree(oldTree, newTree, &opts)
	if err != nil {
		return 0, 0, fmt.Errorf("repo.DiffTreeToTree failed: %v", err)
	}
	defer diff.Free()
	diffStats, err := diff.Stats()
	if err != nil {
		return 0, 0, fmt.Errorf("diff.Stats failed: %v", err)
	}
	defer diffStats.Free()
	return diffStats.Insertions(), diffStats.Deletions(), nil
}

func churnForCommit(repo *git2go.Repository, commit *git2go.Commit) (*CommitChurn, error) {
	churn := &CommitChurn{
		CommitID: commit.Id().String(),
		Date:     commit.Author().When,
		Message:  commit.Summary(),
	}
	tree, err := commitTree(commit)
	if err != nil {
		return nil, err
	}
	var parentTree *git2go.Tree
	if commit.ParentCount() > 0 {
		parentTree, err = commitTree(commit.Parent(0))
		if err != nil {
			return nil, err
		}
	}
	churn.Added, churn.Removed, err = diffLineStats(repo, parentTree, tree)
	if err != nil {
		return nil, err
	}
	if commit.ParentCount() == 2 {
		// A merge commit rewrites little itself; the actual modification is
		// what separates its two parents.
		firstTree, err := commitTree(commit.Parent(0))
		if err != nil {
			return nil, err
		}
		secondTree, err := commitTree(commit.Parent(1))
		if err != nil {
			return nil, err
		}
		added, removed, err := diffLineStats(repo, firstTree, secondTree)
		if err != nil {
			return nil, err
		}
		churn.Modified = added + removed
	} else {
		churn.Modified = churn.Added + churn.Removed
	}
	return churn, nil
}

// CollectChurn walks the commits of the given branch (the checked out branch
// when empty) and returns per-commit line churn for the date window, oldest
// first.
func CollectChurn(repoPath, branch string, since, until time.Time) ([]CommitChurn, error) {
	repo, err := git2go.OpenRepository(repoPath)
	if err != nil {
		return nil, fmt.Errorf("git2go.OpenRepository failed: %v", err)
	}
	defer repo.Free()

	tip, err := branchTip(repo, branch)
	if err != nil {
		return nil, err
	}

	walk, err := repo.Walk()
	if err != nil {
		return nil, fmt.Errorf("repo.Walk failed: %v", err)
	}
	defer walk.Free()
	walk.Sorting(git2go.SortTime)
	err = walk.Push(tip)
	if err != nil {
		return nil, fmt.Errorf("walk.Push failed: %v", err)
	}

	var churns []CommitChurn
	err = walk.Iterate(func(commit *git2go.Commit) bool {
		when := commit.Author().When
		if when.After(until) {
			return true
		}
		if when.Before(since) {
			// Commits are visited newest first; everything below this one
			// is older than the window.
			return false
		}
		churn, cerr := churnForCommit(repo, commit)
		if cerr != nil {
			glog.Errorf("skipping commit %s: %v", commit.Id(), cerr)
			return true
		}
		churns = append(churns, *churn)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("walk.Iterate failed: %v", err)
	}

	sort.Slice(churns, func(i, j int) bool {
		return churns[i].Date.Before(churns[j].Date)
	})
	return churns, nil
}

// WriteChurnCSV saves the churn rows, oldest commit first.
func WriteChurnCSV(churns []CommitChurn, outputPath string) error {
	header := []string{"commit_id", "date", "message", "added_lines", "removed_lines", "modified_lines"}
	rows := make([][]string, 0, len(churns))
	for _, churn := range churns {
		rows = append(rows, []string{
			churn.CommitID,
			churn.Date.Format("2006-01-02 15:04:05"),
			churn.Message,
			strconv.Itoa(churn.Added),
			strconv.Itoa(churn.Removed),
			strconv.Itoa(churn.Modified),
		})
	}
	return atomic.WriteCSV(outputPath, header, rows)
}
