package scanner

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/abdhusiya/fileindex/internal/models"
)

// Scanner builds recursive file listings for the manifest
type Scanner struct {
	logger *logrus.Logger
	tracer trace.Tracer
}

// New creates a new scanner
func New(logger *logrus.Logger) *Scanner {
	return &Scanner{
		logger: logger,
		tracer: otel.Tracer("fileindex"),
	}
}

// Scan recursively lists the folder at filepath.Join(rootDir, section) and
// returns its ordered structure. Entry paths are relative to rootDir and
// always use forward slashes, so they work as URLs on any host.
// A missing folder yields an empty (non-nil) listing, not an error.
func (s *Scanner) Scan(ctx context.Context, rootDir, section string) []models.Entry {
	_, span := s.tracer.Start(ctx, "scan_section")
	defer span.End()

	span.SetAttributes(
		attribute.String("root_dir", rootDir),
		attribute.String("section", section),
	)

	entries := s.walk(filepath.Join(rootDir, section), section)
	span.SetAttributes(attribute.Int("entry_count", len(entries)))
	return entries
}

// walk lists the immediate children of dir, recursing into subdirectories.
// relPath is the slash-separated path of dir relative to the scan root.
func (s *Scanner) walk(dir, relPath string) []models.Entry {
	structure := []models.Entry{}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warnf("Folder '%s' not found. Skipping.", dir)
		} else {
			s.logger.Warnf("Failed to read folder '%s': %v. Skipping.", dir, err)
		}
		return structure
	}

	var dirs []os.DirEntry
	var files []os.DirEntry
	for _, entry := range dirEntries {
		// Skip hidden and system files (e.g. .git, .DS_Store)
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if entry.IsDir() {
			dirs = append(dirs, entry)
		} else {
			files = append(files, entry)
		}
	}

	// Directories first, each partition case-insensitive alphabetical
	sort.SliceStable(dirs, func(i, j int) bool {
		return strings.ToLower(dirs[i].Name()) < strings.ToLower(dirs[j].Name())
	})
	sort.SliceStable(files, func(i, j int) bool {
		return strings.ToLower(files[i].Name()) < strings.ToLower(files[j].Name())
	})

	for _, d := range dirs {
		childRel := path.Join(relPath, d.Name())
		children := s.walk(filepath.Join(dir, d.Name()), childRel)
		structure = append(structure, models.NewDirEntry(d.Name(), childRel, children))
	}

	for _, f := range files {
		structure = append(structure, models.NewFileEntry(f.Name(), path.Join(relPath, f.Name())))
	}

	return structure
}
