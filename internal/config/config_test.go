package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every recognized environment variable for the duration of a
// test, both to isolate tests from the host environment and to undo the
// process-env mutation godotenv performs when a .env file is loaded.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvPath, EnvRemote, EnvBranch, EnvSSHKey, EnvToken, EnvUsername, EnvPassword, EnvFetchTimeout} {
		t.Setenv(key, "") // registers restoration of the original value
		os.Unsetenv(key)  // godotenv skips set-but-empty vars, so truly unset
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestResolveDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Resolve(Options{Path: "/srv/mirror"})
	require.NoError(t, err)
	assert.Equal(t, "/srv/mirror", cfg.Path)
	assert.Equal(t, DefaultRemote, cfg.Remote)
	assert.Empty(t, cfg.Branch)
	assert.Equal(t, DefaultFetchTimeout, cfg.FetchTimeout)
	assert.Nil(t, cfg.Auth)
}

func TestResolveRequiresPath(t *testing.T) {
	clearEnv(t)
	_, err := Resolve(Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path is required")
}

func TestResolveFlagBeatsEnvBeatsFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfgFile := writeFile(t, dir, "repowatch.yaml", "path: /from/file\nremote: file-remote\nbranch: file-branch\n")

	t.Setenv(EnvRemote, "env-remote")

	cfg, err := Resolve(Options{Path: "/from/flag", ConfigFile: cfgFile})
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", cfg.Path)
	assert.Equal(t, "env-remote", cfg.Remote)
	assert.Equal(t, "file-branch", cfg.Branch)
}

func TestResolveEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := writeFile(t, dir, "watch.env", EnvPath+"=/from/envfile\n"+EnvBranch+"=main\n")

	cfg, err := Resolve(Options{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, "/from/envfile", cfg.Path)
	assert.Equal(t, "main", cfg.Branch)
}

func TestResolveExplicitEnvFileMissing(t *testing.T) {
	clearEnv(t)
	_, err := Resolve(Options{Path: "/srv/mirror", EnvFile: "/nonexistent/.env"})
	require.Error(t, err)
}

func TestResolveConfigFileMissing(t *testing.T) {
	clearEnv(t)
	_, err := Resolve(Options{Path: "/srv/mirror", ConfigFile: "/nonexistent/repowatch.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration file not found")
}

func TestResolveConfigFileEnvExpansion(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("MIRROR_ROOT", "/srv/mirrors")
	cfgFile := writeFile(t, dir, "repowatch.yaml", "path: ${MIRROR_ROOT}/app\n")

	cfg, err := Resolve(Options{ConfigFile: cfgFile})
	require.NoError(t, err)
	assert.Equal(t, "/srv/mirrors/app", cfg.Path)
}

func TestResolveTimeout(t *testing.T) {
	clearEnv(t)
	cfg, err := Resolve(Options{Path: "/repo", FetchTimeout: "30s"})
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)

	_, err = Resolve(Options{Path: "/repo", FetchTimeout: "soon"})
	require.Error(t, err)

	_, err = Resolve(Options{Path: "/repo", FetchTimeout: "-1s"})
	require.Error(t, err)
}

func TestResolveAuthPrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfgFile := writeFile(t, dir, "repowatch.yaml", "path: /repo\nauth:\n  type: basic\n  username: u\n  password: p\n")

	// File auth block applies when nothing higher-precedence is set.
	cfg, err := Resolve(Options{ConfigFile: cfgFile})
	require.NoError(t, err)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, AuthTypeBasic, cfg.Auth.Type)

	// Env token outranks the file auth block.
	t.Setenv(EnvToken, "secret")
	cfg, err = Resolve(Options{ConfigFile: cfgFile})
	require.NoError(t, err)
	assert.Equal(t, AuthTypeToken, cfg.Auth.Type)
	assert.Equal(t, "secret", cfg.Auth.Token)

	// Flag SSH key outranks everything.
	cfg, err = Resolve(Options{ConfigFile: cfgFile, SSHKey: "/keys/id_ed25519"})
	require.NoError(t, err)
	assert.Equal(t, AuthTypeSSH, cfg.Auth.Type)
	assert.Equal(t, "/keys/id_ed25519", cfg.Auth.KeyPath)
}

func TestAuthConfigIsZero(t *testing.T) {
	var nilAuth *AuthConfig
	assert.True(t, nilAuth.IsZero())
	assert.True(t, (&AuthConfig{}).IsZero())
	assert.True(t, (&AuthConfig{Type: AuthTypeNone}).IsZero())
	assert.False(t, (&AuthConfig{Type: AuthTypeSSH, KeyPath: "k"}).IsZero())
}
