package git

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Base typed git errors enabling structured classification without string parsing upstream.

type NotARepositoryError struct {
	Path string
	Err  error
}

func (e *NotARepositoryError) Error() string {
	return fmt.Sprintf("open %s: not a git repository: %v", e.Path, e.Err)
}
func (e *NotARepositoryError) Unwrap() error { return e.Err }

type RemoteNotFoundError struct {
	Remote string
	Err    error
}

func (e *RemoteNotFoundError) Error() string {
	return fmt.Sprintf("remote %q is not configured in the repository: %v", e.Remote, e.Err)
}
func (e *RemoteNotFoundError) Unwrap() error { return e.Err }

type BranchNotFoundError struct {
	Remote, Branch string
	Err            error
}

func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("branch %q not found on remote %q: %v", e.Branch, e.Remote, e.Err)
}
func (e *BranchNotFoundError) Unwrap() error { return e.Err }

type AuthError struct {
	Op, Remote string
	Err        error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s auth error for remote %q: %v", e.Op, e.Remote, e.Err)
}
func (e *AuthError) Unwrap() error { return e.Err }

type FetchError struct {
	Op, Remote string
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s failed for remote %q: %v", e.Op, e.Remote, e.Err)
}
func (e *FetchError) Unwrap() error { return e.Err }

type HeadError struct {
	Op  string
	Err error
}

func (e *HeadError) Error() string {
	return fmt.Sprintf("%s: cannot resolve HEAD: %v", e.Op, e.Err)
}
func (e *HeadError) Unwrap() error { return e.Err }

// DivergedError reports that the local branch holds commits the remote lacks,
// so the remote tip cannot be reached by fast-forwarding. This is the merge
// conflict of a fast-forward-only mirror.
type DivergedError struct {
	Remote, Branch      string
	LocalTip, RemoteTip string
}

func (e *DivergedError) Error() string {
	return fmt.Sprintf("local branch %q diverged from %s/%s (local %s, remote %s); refusing to merge",
		e.Branch, e.Remote, e.Branch, short(e.LocalTip), short(e.RemoteTip))
}

func short(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}

// classifyFetchError wraps fetch failures into typed variants when possible.
func classifyFetchError(op, remote string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, transport.ErrAuthenticationRequired) || errors.Is(err, transport.ErrAuthorizationFailed) || errors.Is(err, transport.ErrInvalidAuthMethod) {
		return &AuthError{Op: op, Remote: remote, Err: err}
	}
	if errors.Is(err, git.ErrRemoteNotFound) {
		return &RemoteNotFoundError{Remote: remote, Err: err}
	}
	l := strings.ToLower(err.Error())
	if strings.Contains(l, "auth") || strings.Contains(l, "permission denied") || strings.Contains(l, "could not read username") || strings.Contains(l, "handshake failed") {
		return &AuthError{Op: op, Remote: remote, Err: err}
	}
	return &FetchError{Op: op, Remote: remote, Err: err}
}
