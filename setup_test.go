package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const streamDocument = `
version: 1
disable_existing_loggers: false
handlers:
  out:
    type: stream
    stream: stdout
root:
  level: DEBUG
  handlers: [out]
`

func writeConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// registeredNames lists the non-root loggers r has handed out.
func registeredNames(r *Registry) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.loggers)
}

func TestResolveConfigPath(t *testing.T) {
	const env = "MKEREFUSE_TEST_LOG_CFG"

	t.Run("env unset uses caller path", func(t *testing.T) {
		t.Setenv(env, "")
		require.NoError(t, os.Unsetenv(env))
		assert.Equal(t, "custom.yaml", ResolveConfigPath("custom.yaml", env))
	})

	t.Run("env unset and no caller path uses default", func(t *testing.T) {
		t.Setenv(env, "")
		require.NoError(t, os.Unsetenv(env))
		assert.Equal(t, DefaultConfigPath, ResolveConfigPath("", env))
	})

	t.Run("env set wins", func(t *testing.T) {
		t.Setenv(env, "/etc/app/logging.yaml")
		assert.Equal(t, "/etc/app/logging.yaml", ResolveConfigPath("custom.yaml", env))
	})

	t.Run("empty env value counts as unset", func(t *testing.T) {
		t.Setenv(env, "")
		assert.Equal(t, "custom.yaml", ResolveConfigPath("custom.yaml", env))
	})

	t.Run("default env variable name", func(t *testing.T) {
		t.Setenv(DefaultConfigPathEnv, "/srv/logging.yaml")
		assert.Equal(t, "/srv/logging.yaml", ResolveConfigPath("custom.yaml", ""))
	})
}

func TestRegistry_Setup(t *testing.T) {
	const env = "MKEREFUSE_TEST_LOG_CFG"

	t.Run("missing file falls back to basic defaults", func(t *testing.T) {
		t.Setenv(env, filepath.Join(t.TempDir(), "does-not-exist.yaml"))
		r, out := newTestRegistry(t)
		early := r.GetLogger("early")

		require.NoError(t, r.Setup("", env))

		assert.Equal(t, zerolog.InfoLevel, r.Root().Level())
		assert.False(t, early.Disabled())
		assert.Empty(t, out.String())
		assert.Equal(t, []string{"early"}, registeredNames(r))
	})

	t.Run("caller path used when env unset", func(t *testing.T) {
		t.Setenv(env, "")
		path := writeConfigFile(t, t.TempDir(), "logging.yaml", streamDocument)
		r, out := newTestRegistry(t)

		require.NoError(t, r.Setup(path, env))

		assert.Equal(t, zerolog.DebugLevel, r.Root().Level())
		assert.Empty(t, out.String(), "setup writes no records of its own")
		assert.Empty(t, registeredNames(r))
	})

	t.Run("env path overrides caller path", func(t *testing.T) {
		dir := t.TempDir()
		envPath := writeConfigFile(t, dir, "from-env.yaml", streamDocument)
		callerPath := writeConfigFile(t, dir, "from-caller.yaml", "version: 1\nlevel: error\n")
		t.Setenv(env, envPath)
		r, _ := newTestRegistry(t)

		require.NoError(t, r.Setup(callerPath, env))

		assert.Equal(t, zerolog.DebugLevel, r.Root().Level())
	})

	t.Run("malformed file is an error, not a fallback", func(t *testing.T) {
		path := writeConfigFile(t, t.TempDir(), "logging.yaml", "version: [1\nroot: {level: info")
		t.Setenv(env, path)
		r, _ := newTestRegistry(t)

		err := r.Setup("", env)
		require.Error(t, err)
		assert.Contains(t, errorOps(err), "logging.Setup")
		assert.Contains(t, errorRoot(err), "yaml:")
		assert.Equal(t, zerolog.WarnLevel, r.Root().Level(), "registry must stay unconfigured")
	})

	t.Run("invalid semantics are an error", func(t *testing.T) {
		path := writeConfigFile(t, t.TempDir(), "logging.yaml", "version: 1\nroot:\n  handlers: [nowhere]\n")
		t.Setenv(env, path)
		r, _ := newTestRegistry(t)

		err := r.Setup("", env)
		require.Error(t, err)
		assert.Contains(t, errorOps(err), "logging.validateConfig")
	})

	t.Run("repeated calls reconfigure", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfigFile(t, dir, "logging.yaml", streamDocument)
		t.Setenv(env, path)
		r, _ := newTestRegistry(t)

		require.NoError(t, r.Setup("", env))
		require.Equal(t, zerolog.DebugLevel, r.Root().Level())

		t.Setenv(env, filepath.Join(dir, "gone.yaml"))
		require.NoError(t, r.Setup("", env))
		assert.Equal(t, zerolog.InfoLevel, r.Root().Level())
	})

	t.Run("nil registry", func(t *testing.T) {
		var r *Registry
		require.Error(t, r.Setup("", env))
	})
}

func TestSetup_ProcessWide(t *testing.T) {
	t.Setenv(DefaultConfigPathEnv, "/tmp/does-not-exist.yaml")

	require.NoError(t, Setup("", ""))
	assert.Equal(t, zerolog.InfoLevel, Root().Level())
	assert.Same(t, Default().Root(), Root())
	assert.Same(t, GetLogger("process.wide"), Default().GetLogger("process.wide"))
}
