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
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	git2go "github.com/libgit2/git2go/v33"

	"github.com/codehealth/codehealth/atomic"
)

type BranchInfo struct {
	Name    string
	Parent  string
	Created time.Time
	AgeDays int
	Merged  bool
}

// DefaultBranch resolves the branch origin/HEAD points at, falling back to
// the checked out branch when the remote head is not known locally.
func DefaultBranch(repo *git2go.Repository) (string, error) {
	ref, err := repo.References.Lookup("refs/remotes/origin/HEAD")
	if err == nil {
		target := ref.SymbolicTarget()
		if target != "" {
			return strings.TrimPrefix(target, "refs/remotes/origin/"), nil
		}
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("repo.Head failed: %v", err)
	}
	name, err := head.Branch().Name()
	if err != nil {
		return "", fmt.Errorf("head.Branch.Name failed: %v", err)
	}
	return name, nil
}

func analyzeBranch(repo *git2go.Repository, branch *git2go.Branch, defaultBranch string, defaultTip *git2go.Oid, now time.Time) (*BranchInfo, error) {
	name, err := branch.Name()
	if err != nil {
		return nil, fmt.Errorf("branch.Name failed: %v", err)
	}
	tip := branch.Target()
	mergeBase, err := repo.MergeBase(defaultTip, tip)
	if err != nil {
		return nil, fmt.Errorf("repo.MergeBase failed for %s: %v", name, err)
	}
	baseCommit, err := repo.LookupCommit(mergeBase)
	if err != nil {
		return nil, fmt.Errorf("git2go.LookupCommit failed: %v", err)
	}
	created := baseCommit.Committer().When
	merged, err := repo.DescendantOf(defaultTip, tip)
	if err != nil {
		return nil, fmt.Errorf("repo.DescendantOf failed for %s: %v", name, err)
	}
	if tip.Equal(mergeBase) {
		// The branch tip sits on the default branch history.
		merged = true
	}
	return &BranchInfo{
		Name:    name,
		Parent:  defaultBranch,
		Created: created,
		AgeDays: int(now.Sub(created).Hours() / 24),
		Merged:  merged,
	}, nil
}

// AnalyzeBranches reports every local branch whose branch point falls inside
// the date window, along with the default branch it forked from.
func AnalyzeBranches(repoPath string, since, until time.Time) ([]BranchInfo, string, error) {
	repo, err := git2go.OpenRepository(repoPath)
	if err != nil {
		return nil, "", fmt.Errorf("git2go.OpenRepository failed: %v", err)
	}
	defer repo.Free()

	defaultBranch, err := DefaultBranch(repo)
	if err != nil {
		return nil, "", err
	}
	defaultRef, err := repo.LookupBranch(defaultBranch, git2go.BranchLocal)
	if err != nil {
		return nil, "", fmt.Errorf("git2go.LookupBranch failed for %s: %v", defaultBranch, err)
	}
	defaultTip := defaultRef.Target()

	iterator, err := repo.NewBranchIterator(git2go.BranchLocal)
	if err != nil {
		return nil, "", fmt.Errorf("repo.NewBranchIterator failed: %v", err)
	}
	defer iterator.Free()

	now := time.Now()
	var infos []BranchInfo
	err = iterator.ForEach(func(branch *git2go.Branch, _ git2go.BranchType) error {
		name, nerr := branch.Name()
		if nerr != nil {
			return nerr
		}
		if name == defaultBranch {
			return nil
		}
		info, aerr := analyzeBranch(repo, branch, defaultBranch, defaultTip, now)
		if aerr != nil {
			glog.Errorf("skipping branch %s: %v", name, aerr)
			return nil
		}
		if info.Created.Before(since) || info.Created.After(until) {
			glog.Infof("branch %s created %s, outside the date window", name, info.Created)
			return nil
		}
		infos = append(infos, *info)
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("iterator.ForEach failed: %v", err)
	}
	return infos, defaultBranch, nil
}

// WriteBranchCSV saves the branch analysis.
func WriteBranchCSV(infos []BranchInfo, outputPath string) error {
	header := []string{"branch", "parent", "created_utc", "age_days", "merged"}
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{
			info.Name,
			info.Parent,
			info.Created.UTC().Format("2006-01-02 15:04:05"),
			strconv.Itoa(info.AgeDays),
			strconv.FormatBool(info.Merged),
		})
	}
	return atomic.WriteCSV(outputPath, header, rows)
}

// CurrentBranch returns the name of the checked out branch.
func CurrentBranch(repoPath string) (string, error) {
	repo, err := git2go.OpenRepository(repoPath)
	if err != nil {
		return "", fmt.Errorf("git2go.OpenRepository failed: %v", err)
	}
	defer repo.Free()
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("repo.Head failed: %v", err)
	}
	name, err := head.Branch().Name()
	if err != nil {
		return "", fmt.Errorf("head.Branch.Name failed: %v", err)
	}
	return name, nil
}
