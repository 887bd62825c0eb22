package manifest

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdhusiya/fileindex/internal/models"
	"github.com/abdhusiya/fileindex/pkg/config"
)

func newTestBuilder(t *testing.T, rootDir string) *Builder {
	cfg := &config.Config{
		Index: config.IndexConfig{
			Sections:   []string{"syllabus", "notes", "assignments"},
			RootDir:    rootDir,
			OutputFile: "files.json",
		},
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard) // Discard logs during tests
	return New(cfg, logger)
}

func TestBuildSections(t *testing.T) {
	rootDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(rootDir, "notes", "Unit1"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(rootDir, "notes", "intro.pdf"), []byte("pdf"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(rootDir, "syllabus"), 0755))
	// assignments deliberately missing

	b := newTestBuilder(t, rootDir)
	m := b.Build(context.Background())

	require.Len(t, m.Sections, 3, "every configured section must appear")
	assert.Equal(t, "syllabus", m.Sections[0].Name)
	assert.Equal(t, "notes", m.Sections[1].Name)
	assert.Equal(t, "assignments", m.Sections[2].Name)

	notes := m.Section("notes")
	require.Len(t, notes, 2)
	assert.Equal(t, "Unit1", notes[0].Name)
	assert.Equal(t, "intro.pdf", notes[1].Name)

	missing := m.Section("assignments")
	assert.NotNil(t, missing, "missing folder must produce an empty listing")
	assert.Empty(t, missing)
}

func TestBuildLastUpdatedFormat(t *testing.T) {
	b := newTestBuilder(t, t.TempDir())
	m := b.Build(context.Background())

	assert.NotEmpty(t, m.Metadata.LastUpdated)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z][a-z]+ \d{1,2}, \d{4}$`), m.Metadata.LastUpdated)
}

func TestBuildIsDeterministic(t *testing.T) {
	rootDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(rootDir, "notes", "Sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(rootDir, "notes", "a.txt"), []byte("a"), 0644))

	b := newTestBuilder(t, rootDir)
	first := b.Build(context.Background())
	second := b.Build(context.Background())

	// Only lastUpdated may differ between runs
	assert.Equal(t, first.Sections, second.Sections)
}

func TestWriteManifest(t *testing.T) {
	rootDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(rootDir, "notes"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(rootDir, "notes", "intro.pdf"), []byte("pdf"), 0644))

	b := newTestBuilder(t, rootDir)
	m, err := b.Generate(context.Background())
	require.NoError(t, err)
	require.NotNil(t, m)

	outputPath := filepath.Join(rootDir, "files.json")
	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	// 2-space indentation, metadata first
	out := string(data)
	assert.True(t, strings.HasPrefix(out, "{\n  \"metadata\""), "output must start with indented metadata block")

	var parsed models.Manifest
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, m.Metadata, parsed.Metadata)
	assert.Equal(t, m.Sections, parsed.Sections)
}

func TestWriteOverwritesExistingFile(t *testing.T) {
	rootDir := t.TempDir()
	outputPath := filepath.Join(rootDir, "files.json")
	require.NoError(t, os.WriteFile(outputPath, []byte("stale"), 0644))

	b := newTestBuilder(t, rootDir)
	_, err := b.Generate(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")

	var parsed models.Manifest
	assert.NoError(t, json.Unmarshal(data, &parsed))
}

func TestWriteFailureReturnsError(t *testing.T) {
	rootDir := t.TempDir()

	b := newTestBuilder(t, rootDir)
	b.cfg.Index.OutputFile = filepath.Join("no-such-dir", "files.json")

	_, err := b.Generate(context.Background())
	assert.Error(t, err, "an unwritable output path must surface an error")
}
