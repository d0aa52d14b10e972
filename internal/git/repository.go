package git

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Repository is the handle shared by every pipeline stage of one invocation.
// It wraps an open go-git repository; no stage caches ref lookups across a
// fetch, so sharing the handle cannot surface stale remote-tracking state.
type Repository struct {
	path  string
	inner *git.Repository
}

// Open opens an existing repository at path. It has no side effects.
func Open(path string) (*Repository, error) {
	inner, err := git.PlainOpen(path)
	if err != nil {
		return nil, &NotARepositoryError{Path: path, Err: err}
	}
	return &Repository{path: path, inner: inner}, nil
}

// Path returns the filesystem path the repository was opened from.
func (r *Repository) Path() string { return r.path }

// Head returns the commit hash the current branch points at. An unborn or
// detached HEAD is an error: this tool only operates on a checked-out branch.
func (r *Repository) Head() (plumbing.Hash, error) {
	ref, err := r.inner.Head()
	if err != nil {
		return plumbing.ZeroHash, &HeadError{Op: "head", Err: err}
	}
	if !ref.Name().IsBranch() {
		return plumbing.ZeroHash, &HeadError{Op: "head", Err: fmt.Errorf("HEAD is detached at %s", ref.Hash())}
	}
	return ref.Hash(), nil
}

// HeadBranch returns the short name of the currently checked-out branch.
func (r *Repository) HeadBranch() (string, error) {
	ref, err := r.inner.Head()
	if err != nil {
		return "", &HeadError{Op: "head", Err: err}
	}
	if !ref.Name().IsBranch() {
		return "", &HeadError{Op: "head", Err: fmt.Errorf("HEAD is detached at %s", ref.Hash())}
	}
	return ref.Name().Short(), nil
}

// Differs reports whether the local branch tip differs from the given remote
// tip. This is a strict hash inequality, not an ancestry check: a diverged
// local branch still reports true, and the divergence is surfaced later by
// Merge.
func (r *Repository) Differs(remoteTip plumbing.Hash) (bool, error) {
	head, err := r.Head()
	if err != nil {
		return false, err
	}
	return head != remoteTip, nil
}
