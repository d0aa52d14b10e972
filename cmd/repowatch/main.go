package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/Am0rfu5/repo-watcher/internal/config"
	"github.com/Am0rfu5/repo-watcher/internal/pipeline"
	"github.com/Am0rfu5/repo-watcher/internal/version"
)

// repoFlags are the configuration flags shared by sync and check. Unset flags
// fall back to environment variables, the .env file, and the YAML config file.
type repoFlags struct {
	Path         string `short:"p" help:"Local repository path"`
	Remote       string `short:"r" help:"Remote name as configured in the repository (default origin)"`
	Branch       string `short:"b" help:"Branch to monitor (default: current HEAD branch)"`
	SSHKey       string `help:"Path to an SSH private key for authentication" type:"path"`
	EnvFile      string `help:"Path to a key/value .env file supplying configuration" type:"path"`
	Config       string `help:"Path to a YAML configuration file" type:"path"`
	FetchTimeout string `help:"Network timeout for fetch operations, e.g. 90s"`
}

var CLI struct {
	Verbose   bool   `short:"v" help:"Enable verbose logging"`
	LogFormat string `help:"Log output format" enum:"text,json" default:"text"`

	Sync    repoFlags `cmd:"" help:"Fetch the monitored branch and fast-forward the local repository when the remote is ahead"`
	Check   repoFlags `cmd:"" help:"Fetch and compare only; never touches the local branch"`
	Version struct{}  `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: logLevel}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if CLI.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	switch ctx.Command() {
	case "sync":
		if err := run(CLI.Sync, false); err != nil {
			slog.Error("Sync failed", "error", err)
			os.Exit(1)
		}
	case "check":
		if err := run(CLI.Check, true); err != nil {
			slog.Error("Check failed", "error", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("repowatch %s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
	}
}

func run(flags repoFlags, checkOnly bool) error {
	cfg, err := config.Resolve(config.Options{
		Path:         flags.Path,
		Remote:       flags.Remote,
		Branch:       flags.Branch,
		SSHKey:       flags.SSHKey,
		FetchTimeout: flags.FetchTimeout,
		EnvFile:      flags.EnvFile,
		ConfigFile:   flags.Config,
	})
	if err != nil {
		return err
	}

	runCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runner := pipeline.NewRunner(cfg)
	if checkOnly {
		runner = runner.WithCheckOnly()
	}
	_, err = runner.Run(runCtx)
	return err
}
