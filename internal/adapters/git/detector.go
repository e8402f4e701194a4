// Package git stamps timer sessions with the repository they were worked
// in, read with go-git so no git binary is needed.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/xvierd/tomato/internal/ports"
)

// detachedHead is reported as the branch when HEAD is not a branch.
const detachedHead = "HEAD detached"

// Detector implements ports.GitDetector.
type Detector struct{}

// NewDetector creates a new git detector.
func NewDetector() *Detector {
	return &Detector{}
}

var _ ports.GitDetector = (*Detector)(nil)

// Detect describes the repository containing dir, searching parent
// directories for .git. An empty dir means the current directory. The
// worktree scan is skipped once ctx is done.
func (d *Detector) Detect(ctx context.Context, dir string) (*ports.GitInfo, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD: %w", err)
	}

	info := &ports.GitInfo{
		Repository: remoteName(repo),
		Branch:     detachedHead,
		Commit:     head.Hash().String(),
	}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}

	if ctx.Err() == nil {
		if wt, err := repo.Worktree(); err == nil {
			if status, err := wt.Status(); err == nil {
				info.Dirty = !status.IsClean()
			}
		}
	}

	return info, nil
}

// IsAvailable reports whether the current directory is inside a repository.
func (d *Detector) IsAvailable() bool {
	_, err := openRepo("")
	return err == nil
}

func openRepo(dir string) (*git.Repository, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	switch {
	case errors.Is(err, git.ErrRepositoryNotExists):
		return nil, fmt.Errorf("no git repository at %s: %w", dir, err)
	case err != nil:
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return repo, nil
}

// remoteName returns owner/name of the origin remote, falling back to the
// first configured remote.
func remoteName(repo *git.Repository) string {
	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil {
		remotes, err := repo.Remotes()
		if err != nil || len(remotes) == 0 {
			return ""
		}
		remote = remotes[0]
	}
	if urls := remote.Config().URLs; len(urls) > 0 {
		return extractRepoName(urls[0])
	}
	return ""
}

// extractRepoName turns an ssh or http remote URL into owner/name. Other
// URLs are returned without their .git suffix.
func extractRepoName(url string) string {
	url = strings.TrimSuffix(url, ".git")

	switch {
	case strings.HasPrefix(url, "git@"):
		if _, path, ok := strings.Cut(url, ":"); ok {
			return path
		}
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		parts := strings.Split(url, "/")
		return strings.Join(parts[len(parts)-2:], "/")
	}

	return url
}

// ShortCommit abbreviates a commit hash to seven characters.
func ShortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
