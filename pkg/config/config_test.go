package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"syllabus", "notes", "assignments"}, cfg.Index.Sections)
	assert.Equal(t, "files.json", cfg.Index.OutputFile)
	assert.Equal(t, 8090, cfg.Server.Port)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)

	// Root dir defaults to cwd and must be absolute
	assert.True(t, filepath.IsAbs(cfg.Index.RootDir))
}

func TestLoadRelativeRootDirBecomesAbsolute(t *testing.T) {
	viper.Reset()
	viper.Set("index.root_dir", "some/relative/dir")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(cfg.Index.RootDir))
	assert.Contains(t, filepath.ToSlash(cfg.Index.RootDir), "some/relative/dir")
}

func TestLoadRejectsEmptySections(t *testing.T) {
	viper.Reset()
	viper.Set("index.sections", []string{})

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadCustomSections(t *testing.T) {
	viper.Reset()
	viper.Set("index.sections", []string{"lectures", "labs"})
	viper.Set("index.output_file", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"lectures", "labs"}, cfg.Index.Sections)
	assert.Equal(t, "files.json", cfg.Index.OutputFile, "empty output file falls back to default")
}
