package git

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Merge incorporates the remote branch tip into the current branch.
//
// Policy: fast-forward only. The local tip must be an ancestor of the remote
// tip; when it is, the branch ref and worktree advance to the remote tip in one
// reset. When it is not, Merge fails with *DivergedError and leaves the branch
// ref and worktree untouched, so no partially merged state is ever committed.
// Any true three-way conflict situation is by definition divergence here.
//
// Merge re-fetches the branch before deciding, so it is also correct when
// invoked without a prior Fetch; with the shared handle the re-fetch is
// normally an already-up-to-date no-op.
func (r *Repository) Merge(ctx context.Context, remoteName, branch string, auth transport.AuthMethod) error {
	remoteTip, err := r.Fetch(ctx, remoteName, branch, auth)
	if err != nil {
		return err
	}

	headRef, err := r.inner.Head()
	if err != nil {
		return &HeadError{Op: "merge", Err: err}
	}
	if !headRef.Name().IsBranch() {
		return &HeadError{Op: "merge", Err: fmt.Errorf("HEAD is detached at %s", headRef.Hash())}
	}

	localTip := headRef.Hash()
	if localTip == remoteTip {
		return nil
	}

	fastForwardPossible, err := isAncestor(r.inner, localTip, remoteTip)
	if err != nil {
		return fmt.Errorf("merge ancestry check: %w", err)
	}
	if !fastForwardPossible {
		return &DivergedError{
			Remote:    remoteName,
			Branch:    branch,
			LocalTip:  localTip.String(),
			RemoteTip: remoteTip.String(),
		}
	}

	wt, err := r.inner.Worktree()
	if err != nil {
		return fmt.Errorf("merge worktree: %w", err)
	}
	if err := wt.Reset(&git.ResetOptions{Commit: remoteTip, Mode: git.HardReset}); err != nil {
		return fmt.Errorf("fast-forward reset: %w", err)
	}
	return nil
}

// isAncestor reports whether commit a is reachable from commit b by walking
// b's parents breadth-first. Identical hashes are ancestors of themselves.
func isAncestor(repo *git.Repository, a, b plumbing.Hash) (bool, error) {
	if a == b {
		return true, nil
	}
	seen := map[plumbing.Hash]struct{}{}
	queue := []plumbing.Hash{b}
	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		if h == a {
			return true, nil
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		commit, err := repo.CommitObject(h)
		if err != nil {
			return false, err
		}
		queue = append(queue, commit.ParentHashes...)
	}
	return false, nil
}
