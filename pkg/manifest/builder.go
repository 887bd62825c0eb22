package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/abdhusiya/fileindex/internal/models"
	"github.com/abdhusiya/fileindex/pkg/config"
	"github.com/abdhusiya/fileindex/pkg/scanner"
)

// lastUpdatedFormat renders dates like "January 25, 2026" for display in
// the website header.
const lastUpdatedFormat = "January 2, 2006"

// Builder assembles and writes the files.json manifest
type Builder struct {
	cfg     *config.Config
	logger  *logrus.Logger
	scanner *scanner.Scanner
	tracer  trace.Tracer
}

// New creates a new manifest builder
func New(cfg *config.Config, logger *logrus.Logger) *Builder {
	return &Builder{
		cfg:     cfg,
		logger:  logger,
		scanner: scanner.New(logger),
		tracer:  otel.Tracer("fileindex"),
	}
}

// Build scans every configured section and assembles the manifest.
// Missing sections are kept in the document as empty listings so the
// website never sees an absent key.
func (b *Builder) Build(ctx context.Context) *models.Manifest {
	ctx, span := b.tracer.Start(ctx, "build_manifest")
	defer span.End()

	now := time.Now().Format(lastUpdatedFormat)
	b.logger.Infof("Date set to: %s", now)

	m := &models.Manifest{
		Metadata: models.Metadata{LastUpdated: now},
	}

	for _, section := range b.cfg.Index.Sections {
		sectionPath := filepath.Join(b.cfg.Index.RootDir, section)
		if _, err := os.Stat(sectionPath); err == nil {
			b.logger.Infof("Scanning '%s' folder...", section)
			m.Sections = append(m.Sections, models.Section{
				Name:    section,
				Entries: b.scanner.Scan(ctx, b.cfg.Index.RootDir, section),
			})
		} else {
			b.logger.Warnf("Missing folder: '%s' - creating empty entry", section)
			m.Sections = append(m.Sections, models.Section{
				Name:    section,
				Entries: []models.Entry{},
			})
		}
	}

	span.SetAttributes(attribute.Int("section_count", len(m.Sections)))
	return m
}

// Write serializes the manifest as 2-space-indented UTF-8 JSON to the
// configured output file, overwriting any existing file.
func (b *Builder) Write(ctx context.Context, m *models.Manifest) error {
	_, span := b.tracer.Start(ctx, "write_manifest")
	defer span.End()

	outputPath := filepath.Join(b.cfg.Index.RootDir, b.cfg.Index.OutputFile)
	span.SetAttributes(attribute.String("path", outputPath))

	data, err := m.MarshalIndent()
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to serialize manifest: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	b.logger.Infof("Successfully generated '%s'", outputPath)
	return nil
}

// Generate builds the manifest and writes it in one pass
func (b *Builder) Generate(ctx context.Context) (*models.Manifest, error) {
	m := b.Build(ctx)
	if err := b.Write(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
