package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roster-manager/backend/internal/config"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
	assert.Equal(t, "Print the version number", versionCmd.Short)
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion, originalBuild := version, buildTime
	SetVersion("test-version-1.0.0", "2026-01-02")
	defer SetVersion(originalVersion, originalBuild)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "roster-manager version test-version-1.0.0 (built 2026-01-02)")
}

func TestRootCmd_Flags(t *testing.T) {
	f := rootCmd.PersistentFlags().Lookup("config")
	require.NotNil(t, f)
	assert.Equal(t, "c", f.Shorthand)
	assert.Equal(t, "roster-manager.yaml", f.DefValue)

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("env-file"))
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [oops"), 0644))

	rootCmd.SetArgs([]string{"--config", path, "--env-file", filepath.Join(t.TempDir(), "none.env")})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	assert.ErrorContains(t, err, "failed to load configuration")
}

func TestPrintBanner(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Photos.Backend = config.BackendMinIO
	cfg.Photos.MinIO.Bucket = "faces"

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	printBanner(rootCmd, cfg)

	assert.Contains(t, buf.String(), "Roster Manager Server")
	assert.Contains(t, buf.String(), "minio://faces/")
	assert.Contains(t, buf.String(), "0.0.0.0:5001")
}
