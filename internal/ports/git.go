package ports

import (
	"context"
)

// GitInfo describes the repository a session was worked in.
type GitInfo struct {
	// Repository is owner/name taken from the origin remote, if any.
	Repository string
	// Branch is "HEAD detached" when HEAD is not on a branch.
	Branch string
	Commit string
	// Dirty reports uncommitted changes in the worktree.
	Dirty bool
}

// GitDetector finds the repository around a directory.
// This is a driven port (implemented by adapters).
type GitDetector interface {
	Detect(ctx context.Context, dir string) (*GitInfo, error)

	// IsAvailable reports whether the current directory is inside a repository.
	IsAvailable() bool
}
