package git

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	ggitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Fetch fetches exactly the named branch from the named remote and returns the
// commit hash its remote-tracking reference points at afterwards. No tags and
// no other branches are transferred, and the local branch ref is never touched.
//
// The remote is resolved against the repository configuration before any
// network I/O, so an unconfigured remote fails without dialing. The fetch runs
// under ctx; callers set the deadline.
func (r *Repository) Fetch(ctx context.Context, remoteName, branch string, auth transport.AuthMethod) (plumbing.Hash, error) {
	remote, err := r.inner.Remote(remoteName)
	if err != nil {
		return plumbing.ZeroHash, &RemoteNotFoundError{Remote: remoteName, Err: err}
	}

	refSpec := ggitcfg.RefSpec(fmt.Sprintf("+refs/heads/%s:refs/remotes/%s/%s", branch, remoteName, branch))
	fetchOpts := &git.FetchOptions{
		RemoteName: remoteName,
		RefSpecs:   []ggitcfg.RefSpec{refSpec},
		Tags:       git.NoTags,
		Auth:       auth,
	}
	if err := remote.FetchContext(ctx, fetchOpts); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return plumbing.ZeroHash, classifyFetchError("fetch", remoteName, err)
	}

	trackingRef := plumbing.NewRemoteReferenceName(remoteName, branch)
	ref, err := r.inner.Reference(trackingRef, true)
	if err != nil {
		return plumbing.ZeroHash, &BranchNotFoundError{Remote: remoteName, Branch: branch, Err: err}
	}
	return ref.Hash(), nil
}
