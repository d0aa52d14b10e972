package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names recognized as a configuration source.
const (
	EnvPath         = "REPOWATCH_PATH"
	EnvRemote       = "REPOWATCH_REMOTE"
	EnvBranch       = "REPOWATCH_BRANCH"
	EnvSSHKey       = "REPOWATCH_SSH_KEY"
	EnvToken        = "REPOWATCH_TOKEN"
	EnvUsername     = "REPOWATCH_USERNAME"
	EnvPassword     = "REPOWATCH_PASSWORD"
	EnvFetchTimeout = "REPOWATCH_FETCH_TIMEOUT"
)

// defaultEnvFiles are probed in order when no explicit env file is given.
var defaultEnvFiles = []string{".env", ".env.local"}

// loadEnvFile loads KEY=VALUE pairs into the process environment without
// overriding variables that are already set, preserving the flags > env > file
// precedence. An explicitly named file must exist; the default probe list is
// best-effort and stops at the first file successfully loaded.
func loadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
		return nil
	}
	for _, candidate := range defaultEnvFiles {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := godotenv.Load(candidate); err == nil {
			return nil
		}
	}
	return nil
}
