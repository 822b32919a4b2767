package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFrom_LocalOverridesShared(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"),
		[]byte("FEEDBACKFLOW_TEST_MODEL=shared\nFEEDBACKFLOW_TEST_TOPIC=reports\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test.local"),
		[]byte("FEEDBACKFLOW_TEST_MODEL=local\n"), 0o644))

	t.Cleanup(func() {
		os.Unsetenv("FEEDBACKFLOW_TEST_MODEL")
		os.Unsetenv("FEEDBACKFLOW_TEST_TOPIC")
	})

	loaded := LoadEnvFrom(dir, "test")

	assert.Len(t, loaded, 2)
	assert.Equal(t, "local", os.Getenv("FEEDBACKFLOW_TEST_MODEL"))
	assert.Equal(t, "reports", os.Getenv("FEEDBACKFLOW_TEST_TOPIC"))
}

func TestLoadEnvFrom_MissingFiles(t *testing.T) {
	assert.Empty(t, LoadEnvFrom(t.TempDir(), "staging"))
}
