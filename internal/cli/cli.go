// Package cli provides the command line interface. It parses and validates
// flags, then hands already-validated primitive inputs to the snapshot
// engine; no parsing responsibility leaks into the core.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scharc/snaprepo/internal/config"
	"github.com/scharc/snaprepo/internal/services/clipboard"
	"github.com/scharc/snaprepo/internal/snapshot"
	"github.com/scharc/snaprepo/internal/tokenizer"
	"github.com/scharc/snaprepo/internal/utils"
)

const (
	pathFlagName        = "path"
	maxFileSizeFlagName = "max-file-size"
	skipCommonFlagName  = "skip-common"
	skipFilesFlagName   = "skip-files"
	configFlagName      = "config"
	outputFlagName      = "output"
	forceFlagName       = "force"
	summaryFlagName     = "summary"
	modelFlagName       = "model"

	rootUse              = "snaprepo"
	rootShortDescription = "format a project directory for AI chat tools"
	rootLongDescription  = `snaprepo converts a project directory into a single, readably-formatted
text artifact safe to paste into an AI chat tool. Secret-like values are
redacted, binary and oversized files are listed but omitted, and token
usage can be estimated against named model context windows.

Invoked without a subcommand it copies the snapshot to the clipboard.`

	snapUse               = "snap"
	snapShortDescription  = "write a markdown snapshot of the project"
	streamUse             = "stream"
	streamShortDescription = "stream the snapshot to stdout for piping"
	tokensUse             = "tokens [file]"
	tokensShortDescription = "report document statistics and per-model token usage"

	pathFlagDescription        = "path to the project directory"
	maxFileSizeFlagDescription = "maximum file size in bytes"
	skipCommonFlagDescription  = "skip commonly referenced files (LICENSE, README, ...)"
	skipFilesFlagDescription   = "additional glob patterns to skip"
	configFlagDescription      = "explicit configuration file path"
	outputFlagDescription      = "output markdown file (default: <project>_source.md)"
	forceFlagDescription       = "overwrite an existing output file"
	summaryFlagDescription     = "append summary statistics to the snapshot"
	modelFlagDescription       = "token models to report on (repeatable)"
)

// Execute runs the snaprepo command line interface.
func Execute(logger *zap.Logger) error {
	rootCommand := newRootCommand(logger)
	return rootCommand.Execute()
}

type snapshotFlags struct {
	projectPath      string
	maxFileSizeBytes int64
	skipCommon       bool
	skipFiles        []string
	configFilePath   string
}

func newRootCommand(logger *zap.Logger) *cobra.Command {
	flags := &snapshotFlags{}

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runClipboard(command, flags, logger)
		},
	}

	persistentFlags := rootCommand.PersistentFlags()
	persistentFlags.StringVarP(&flags.projectPath, pathFlagName, "p", ".", pathFlagDescription)
	persistentFlags.Int64Var(&flags.maxFileSizeBytes, maxFileSizeFlagName, config.DefaultMaxFileSizeBytes, maxFileSizeFlagDescription)
	persistentFlags.BoolVar(&flags.skipCommon, skipCommonFlagName, false, skipCommonFlagDescription)
	persistentFlags.StringSliceVar(&flags.skipFiles, skipFilesFlagName, nil, skipFilesFlagDescription)
	persistentFlags.StringVar(&flags.configFilePath, configFlagName, "", configFlagDescription)

	rootCommand.AddCommand(newSnapCommand(flags, logger))
	rootCommand.AddCommand(newStreamCommand(flags, logger))
	rootCommand.AddCommand(newTokensCommand(flags, logger))
	return rootCommand
}

// resolveSnapshotOptions merges configuration-file defaults under explicit
// flag values. A flag the user set always wins over the configuration file.
func resolveSnapshotOptions(command *cobra.Command, flags *snapshotFlags, logger *zap.Logger) (snapshot.Options, config.ApplicationConfiguration, error) {
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: flags.configFilePath,
	})
	if configurationError != nil {
		return snapshot.Options{}, config.ApplicationConfiguration{}, configurationError
	}

	options := snapshot.Options{
		Root:             flags.projectPath,
		MaxFileSizeBytes: flags.maxFileSizeBytes,
		SkipCommon:       flags.skipCommon,
		SkipPatterns:     flags.skipFiles,
		IncludeSummary:   true,
		Logger:           logger,
	}

	snapConfiguration := applicationConfiguration.Snap
	if !command.Flags().Changed(maxFileSizeFlagName) && snapConfiguration.MaxFileSizeBytes != nil {
		options.MaxFileSizeBytes = *snapConfiguration.MaxFileSizeBytes
	}
	if !command.Flags().Changed(skipCommonFlagName) && snapConfiguration.SkipCommon != nil {
		options.SkipCommon = *snapConfiguration.SkipCommon
	}
	if !command.Flags().Changed(skipFilesFlagName) && len(snapConfiguration.SkipFiles) > 0 {
		options.SkipPatterns = snapConfiguration.SkipFiles
	}
	return options, applicationConfiguration, nil
}

func runClipboard(command *cobra.Command, flags *snapshotFlags, logger *zap.Logger) error {
	options, _, optionsError := resolveSnapshotOptions(command, flags, logger)
	if optionsError != nil {
		return optionsError
	}
	options.IncludeSummary = false

	builtSnapshot, buildError := snapshot.Build(options)
	if buildError != nil {
		return buildError
	}
	if copyError := clipboard.NewService().Copy(builtSnapshot.GeneratedText); copyError != nil {
		return fmt.Errorf("copy snapshot to clipboard: %w", copyError)
	}
	logger.Info("project snapshot copied to clipboard",
		zap.Int("files", builtSnapshot.FileCount),
		zap.String("size", utils.FormatFileSize(builtSnapshot.TotalSizeBytes)))
	return nil
}

func newSnapCommand(flags *snapshotFlags, logger *zap.Logger) *cobra.Command {
	var outputPath string
	var forceOverwrite bool
	includeSummary := true

	snapCommand := &cobra.Command{
		Use:   snapUse,
		Short: snapShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			options, applicationConfiguration, optionsError := resolveSnapshotOptions(command, flags, logger)
			if optionsError != nil {
				return optionsError
			}
			options.IncludeSummary = includeSummary

			resolvedOutputPath := outputPath
			if resolvedOutputPath == "" {
				resolvedOutputPath = applicationConfiguration.Snap.Output
			}
			if resolvedOutputPath == "" {
				absoluteRoot, absoluteError := filepath.Abs(options.Root)
				if absoluteError != nil {
					return fmt.Errorf("resolve project path %s: %w", options.Root, absoluteError)
				}
				resolvedOutputPath = filepath.Base(absoluteRoot) + "_source.md"
			}
			if _, statError := os.Stat(resolvedOutputPath); statError == nil && !forceOverwrite {
				return fmt.Errorf("output file %s already exists; use --%s to overwrite", resolvedOutputPath, forceFlagName)
			}
			options.OutputPath = resolvedOutputPath

			builtSnapshot, buildError := snapshot.Build(options)
			if buildError != nil {
				return buildError
			}
			if writeError := writeFileAtomically(resolvedOutputPath, []byte(builtSnapshot.GeneratedText)); writeError != nil {
				return fmt.Errorf("write snapshot to %s: %w", resolvedOutputPath, writeError)
			}

			logger.Info("snapshot created",
				zap.String("output", resolvedOutputPath),
				zap.Int("files", builtSnapshot.FileCount),
				zap.Int("skipped", builtSnapshot.SkippedCount),
				zap.String("size", utils.FormatFileSize(builtSnapshot.TotalSizeBytes)))
			return nil
		},
	}

	snapCommand.Flags().StringVarP(&outputPath, outputFlagName, "o", "", outputFlagDescription)
	snapCommand.Flags().BoolVarP(&forceOverwrite, forceFlagName, "f", false, forceFlagDescription)
	snapCommand.Flags().BoolVar(&includeSummary, summaryFlagName, true, summaryFlagDescription)
	return snapCommand
}

func newStreamCommand(flags *snapshotFlags, logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   streamUse,
		Short: streamShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			options, _, optionsError := resolveSnapshotOptions(command, flags, logger)
			if optionsError != nil {
				return optionsError
			}
			options.IncludeSummary = false

			builtSnapshot, buildError := snapshot.Build(options)
			if buildError != nil {
				return buildError
			}
			_, writeError := fmt.Fprint(command.OutOrStdout(), builtSnapshot.GeneratedText)
			return writeError
		},
	}
}

func newTokensCommand(flags *snapshotFlags, logger *zap.Logger) *cobra.Command {
	var modelNames []string

	tokensCommand := &cobra.Command{
		Use:   tokensUse,
		Short: tokensShortDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
				ExplicitFilePath: flags.configFilePath,
			})
			if configurationError != nil {
				return configurationError
			}

			targetPath := ""
			if len(arguments) == 1 {
				targetPath = arguments[0]
			}
			if targetPath == "" {
				workingDirectory, workingDirectoryError := os.Getwd()
				if workingDirectoryError != nil {
					return fmt.Errorf("determine working directory: %w", workingDirectoryError)
				}
				targetPath = filepath.Base(workingDirectory) + "_source.md"
			}

			documentBytes, readError := os.ReadFile(targetPath)
			if readError != nil {
				return fmt.Errorf("no project snapshot at %s; run `snaprepo snap` or pass a file: %w", targetPath, readError)
			}
			documentText := string(documentBytes)

			requestedModels := modelNames
			if !command.Flags().Changed(modelFlagName) && len(applicationConfiguration.Tokens.Models) > 0 {
				requestedModels = applicationConfiguration.Tokens.Models
			}
			models, modelsError := tokenizer.ModelsByName(requestedModels)
			if modelsError != nil {
				return modelsError
			}
			reports, estimateError := tokenizer.Estimate(documentText, models)
			if estimateError != nil {
				return estimateError
			}

			documentStats := tokenizer.Stats(documentText)
			writer := command.OutOrStdout()
			fmt.Fprintf(writer, "File: %s\n", targetPath)
			fmt.Fprintf(writer, "Characters: %d\n", documentStats.CharacterCount)
			fmt.Fprintf(writer, "Lines: %d\n", documentStats.LineCount)
			fmt.Fprintf(writer, "Code blocks: %d\n\n", documentStats.CodeBlockCount)
			for _, report := range reports {
				fmt.Fprintf(writer, "%s: %d tokens\n", report.ModelName, report.TokenCount)
				fmt.Fprintf(writer, "  max context: %d | usage: %.1f%% | remaining: %d\n",
					report.MaxContextTokens, report.UsagePercent, report.RemainingTokens)
			}
			return nil
		},
	}

	tokensCommand.Flags().StringSliceVar(&modelNames, modelFlagName, nil, modelFlagDescription)
	return tokensCommand
}

// writeFileAtomically publishes data at path via a temporary file and rename,
// so an interrupted run leaves no partial artifact visible.
func writeFileAtomically(path string, data []byte) error {
	destinationDirectory := filepath.Dir(path)
	temporaryFile, createError := os.CreateTemp(destinationDirectory, ".snaprepo-*")
	if createError != nil {
		return createError
	}
	temporaryPath := temporaryFile.Name()
	if _, writeError := temporaryFile.Write(data); writeError != nil {
		temporaryFile.Close()
		os.Remove(temporaryPath)
		return writeError
	}
	if closeError := temporaryFile.Close(); closeError != nil {
		os.Remove(temporaryPath)
		return closeError
	}
	if renameError := os.Rename(temporaryPath, path); renameError != nil {
		os.Remove(temporaryPath)
		return renameError
	}
	return nil
}
