package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	ggitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// testFixture is a bare "remote" repository plus a seed worktree that pushes
// to it, so tests can advance the remote independently of the local clone.
type testFixture struct {
	barePath string
	seedRepo *git.Repository
	seedPath string
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()
	tmp := t.TempDir()

	barePath := filepath.Join(tmp, "remote.git")
	if _, err := git.PlainInit(barePath, true); err != nil {
		t.Fatalf("init bare: %v", err)
	}

	seedPath := filepath.Join(tmp, "seed")
	seedRepo, err := git.PlainInit(seedPath, false)
	if err != nil {
		t.Fatalf("init seed: %v", err)
	}
	if _, err := seedRepo.CreateRemote(&ggitcfg.RemoteConfig{Name: "origin", URLs: []string{barePath}}); err != nil {
		t.Fatalf("create remote: %v", err)
	}

	return &testFixture{barePath: barePath, seedRepo: seedRepo, seedPath: seedPath}
}

// addCommit writes a file into the seed worktree and commits it, returning the hash.
func (f *testFixture) addCommit(t *testing.T, filename, content, msg string) plumbing.Hash {
	t.Helper()
	return addCommit(t, f.seedRepo, f.seedPath, filename, content, msg)
}

// push publishes the seed repository's master branch to the bare remote.
func (f *testFixture) push(t *testing.T) {
	t.Helper()
	if err := f.seedRepo.Push(&git.PushOptions{RemoteName: "origin"}); err != nil {
		t.Fatalf("push: %v", err)
	}
}

// clone creates a local working clone of the bare remote and returns its path.
func (f *testFixture) clone(t *testing.T, name string) string {
	t.Helper()
	localPath := filepath.Join(filepath.Dir(f.barePath), name)
	_, err := git.PlainClone(localPath, false, &git.CloneOptions{
		URL:           f.barePath,
		ReferenceName: plumbing.NewBranchReferenceName("master"),
		SingleBranch:  true,
	})
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	return localPath
}

// helper to add a file and commit returning hash.
func addCommit(t *testing.T, repo *git.Repository, repoPath, filename, content, msg string) plumbing.Hash {
	t.Helper()
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	full := filepath.Join(repoPath, filename)
	if writeFileErr := os.WriteFile(full, []byte(content), 0o600); writeFileErr != nil {
		t.Fatalf("write file: %v", writeFileErr)
	}
	if _, addErr := wt.Add(filename); addErr != nil {
		t.Fatalf("add: %v", addErr)
	}
	hash, err := wt.Commit(msg, &git.CommitOptions{Author: &object.Signature{Name: "tester", Email: "t@example.com", When: time.Now()}})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	return hash
}
