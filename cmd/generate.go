package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abdhusiya/fileindex/pkg/config"
	"github.com/abdhusiya/fileindex/pkg/manifest"
	"github.com/abdhusiya/fileindex/pkg/telemetry"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the files.json manifest",
	Long: `Scan the configured section folders and write the files.json manifest
that the website consumes. Missing folders produce empty sections with a
warning; write failures abort with a non-zero exit code.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	// Generate-specific flags
	generateCmd.Flags().String("root-dir", "", "Directory containing the section folders (default is cwd)")
	generateCmd.Flags().StringP("output", "o", "files.json", "Output filename, relative to the root directory")
	generateCmd.Flags().StringSlice("sections", []string{"syllabus", "notes", "assignments"}, "Section folders to scan, in output order")

	// Bind flags to viper
	_ = viper.BindPFlag("index.root_dir", generateCmd.Flags().Lookup("root-dir"))
	_ = viper.BindPFlag("index.output_file", generateCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("index.sections", generateCmd.Flags().Lookup("sections"))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger := GetLogger()
	logger.Info("Starting file index generator")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize telemetry if enabled
	if cfg.Telemetry.Enabled {
		logger.Info("Initializing OpenTelemetry")
		cleanup, err := telemetry.Initialize(cfg.Telemetry, logger)
		if err != nil {
			logger.Warnf("Failed to initialize telemetry: %v", err)
		} else {
			defer cleanup()
		}
	}

	builder := manifest.New(cfg, logger)
	if _, err := builder.Generate(context.Background()); err != nil {
		return err
	}

	logger.Info("Done. Commit and push to publish the updated listing.")
	return nil
}
