// Package pipeline runs the four-stage invocation this tool exists for:
// open the local repository, fetch the monitored branch from its remote,
// compare the local and remote tips, and fast-forward when the remote is
// ahead. One Runner executes one invocation; nothing persists between runs
// beyond the repository's own ref database.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Am0rfu5/repo-watcher/internal/auth"
	"github.com/Am0rfu5/repo-watcher/internal/config"
	"github.com/Am0rfu5/repo-watcher/internal/git"
	"github.com/Am0rfu5/repo-watcher/internal/logfields"
)

// Outcome is the terminal state of one invocation.
type Outcome string

const (
	// OutcomeUpToDate means the local tip already equals the remote tip.
	OutcomeUpToDate Outcome = "up-to-date"
	// OutcomeFastForwarded means the local branch was advanced to the remote tip.
	OutcomeFastForwarded Outcome = "fast-forwarded"
	// OutcomeRemoteAhead means the tips differ and no merge was attempted
	// (check-only mode).
	OutcomeRemoteAhead Outcome = "remote-ahead"
)

// Result describes what one invocation observed and did.
type Result struct {
	RunID     string
	Branch    string
	LocalTip  string
	RemoteTip string
	Outcome   Outcome
}

// Runner executes a single invocation against one configured repository.
type Runner struct {
	cfg       *config.Config
	checkOnly bool
}

// NewRunner creates a runner for the resolved configuration.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{cfg: cfg}
}

// WithCheckOnly stops the pipeline after the comparison stage; the repository
// is never mutated.
func (r *Runner) WithCheckOnly() *Runner {
	r.checkOnly = true
	return r
}

// Run executes the pipeline: open, fetch, compare, merge. Every stage failure
// is terminal for the invocation; nothing is retried.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	log := slog.With(logfields.RunID(runID), logfields.Path(r.cfg.Path), logfields.Remote(r.cfg.Remote))

	repo, err := git.Open(r.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open stage: %w", err)
	}

	branch := r.cfg.Branch
	if branch == "" {
		branch, err = repo.HeadBranch()
		if err != nil {
			return nil, fmt.Errorf("open stage: %w", err)
		}
		log.Debug("Branch defaulted from HEAD", logfields.Branch(branch))
	}
	log = slog.With(logfields.RunID(runID), logfields.Path(r.cfg.Path), logfields.Remote(r.cfg.Remote), logfields.Branch(branch))

	authMethod, err := auth.CreateAuth(r.cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("fetch stage: %w", err)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, r.cfg.FetchTimeout)
	defer cancel()

	start := time.Now()
	remoteTip, err := repo.Fetch(fetchCtx, r.cfg.Remote, branch, authMethod)
	if err != nil {
		return nil, fmt.Errorf("fetch stage: %w", err)
	}
	log.Debug("Fetched remote branch",
		logfields.Stage("fetch"),
		logfields.ShortCommit(remoteTip.String()),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000.0))

	localTip, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("compare stage: %w", err)
	}

	result := &Result{
		RunID:     runID,
		Branch:    branch,
		LocalTip:  localTip.String(),
		RemoteTip: remoteTip.String(),
	}

	if localTip == remoteTip {
		result.Outcome = OutcomeUpToDate
		log.Info("Repository up to date", logfields.Stage("compare"), logfields.ShortCommit(localTip.String()), logfields.Outcome(string(result.Outcome)))
		return result, nil
	}

	if r.checkOnly {
		result.Outcome = OutcomeRemoteAhead
		log.Info("Remote tip differs from local",
			logfields.Stage("compare"),
			slog.String("local", short(localTip.String())),
			slog.String("remote", short(remoteTip.String())),
			logfields.Outcome(string(result.Outcome)))
		return result, nil
	}

	mergeCtx, mergeCancel := context.WithTimeout(ctx, r.cfg.FetchTimeout)
	defer mergeCancel()

	start = time.Now()
	if err := repo.Merge(mergeCtx, r.cfg.Remote, branch, authMethod); err != nil {
		return nil, fmt.Errorf("merge stage: %w", err)
	}

	newTip, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("merge stage: %w", err)
	}
	result.LocalTip = newTip.String()
	result.Outcome = OutcomeFastForwarded
	log.Info("Fast-forwarded repository",
		logfields.Stage("merge"),
		slog.String("from", short(localTip.String())),
		slog.String("to", short(newTip.String())),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000.0),
		logfields.Outcome(string(result.Outcome)))
	return result, nil
}

func short(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
