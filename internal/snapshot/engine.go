package snapshot

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/scharc/snaprepo/internal/classify"
	"github.com/scharc/snaprepo/internal/config"
	"github.com/scharc/snaprepo/internal/ignore"
	"github.com/scharc/snaprepo/internal/redact"
	"github.com/scharc/snaprepo/internal/walker"
)

// Options carries the already-validated primitive inputs of one snapshot run.
type Options struct {
	Root             string
	MaxFileSizeBytes int64
	SkipCommon       bool
	SkipPatterns     []string
	IncludeSummary   bool
	// OutputPath, when the destination lies inside the scanned tree, keeps the
	// snapshot from including itself.
	OutputPath string
	Logger     *zap.Logger
}

// Build runs the snapshot pipeline over the tree at options.Root and returns
// the finished document. The only fatal condition is an invalid root; every
// per-entry failure is recorded as a skip and the walk continues.
func Build(options Options) (*Snapshot, error) {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxFileSizeBytes := options.MaxFileSizeBytes
	if maxFileSizeBytes <= 0 {
		maxFileSizeBytes = config.DefaultMaxFileSizeBytes
	}

	rules := ignore.NewRuleSet()
	rules.AddPatterns(config.DefaultIgnorePatterns()...)

	var excludedAbsolutePaths []string
	if options.OutputPath != "" {
		if absoluteOutputPath, absoluteError := filepath.Abs(options.OutputPath); absoluteError == nil {
			excludedAbsolutePaths = append(excludedAbsolutePaths, absoluteOutputPath)
		}
	}

	redactionEngine := redact.NewEngine()
	assembler := NewAssembler(options.IncludeSummary)

	walkError := walker.Walk(walker.Options{
		Root:                 options.Root,
		Rules:                rules,
		MaxFileSizeBytes:     maxFileSizeBytes,
		SkipCommon:           options.SkipCommon,
		ExtraSkipPatterns:    options.SkipPatterns,
		ExcludeAbsolutePaths: excludedAbsolutePaths,
		Logger:               logger,
	}, func(candidate walker.Candidate) error {
		assembler.Add(processCandidate(candidate, redactionEngine, logger))
		return nil
	})
	if walkError != nil {
		return nil, walkError
	}
	return assembler.Finish(), nil
}

// processCandidate turns one walker candidate into an immutable FileRecord.
// Suppressed files are decided on path alone so their raw content is never
// read into memory.
func processCandidate(candidate walker.Candidate, redactionEngine *redact.Engine, logger *zap.Logger) FileRecord {
	record := FileRecord{
		RelativePath: candidate.RelativePath,
		SizeBytes:    candidate.SizeBytes,
		Language:     classify.Language(candidate.RelativePath),
	}

	if candidate.Unreadable {
		record.OmittedReason = OmittedUnreadable
		return record
	}

	if suppressionReason, suppressed := redactionEngine.SuppressionReason(candidate.RelativePath); suppressed && !candidate.IsTemplate {
		record.OmittedReason = OmittedRedactedWholeFile
		record.OmissionNote = suppressionReason
		record.RedactionApplied = true
		return record
	}

	if candidate.Oversize {
		record.OmittedReason = OmittedTooLarge
		return record
	}

	fileBytes, readError := os.ReadFile(candidate.AbsolutePath)
	if readError != nil {
		logger.Warn("skipping unreadable file",
			zap.String("path", candidate.RelativePath),
			zap.Error(readError))
		record.OmittedReason = OmittedUnreadable
		return record
	}

	sniffedPrefix := fileBytes
	if len(sniffedPrefix) > classify.SniffLength {
		sniffedPrefix = sniffedPrefix[:classify.SniffLength]
	}
	classification := classify.Classify(candidate.RelativePath, sniffedPrefix)
	record.Encoding = classification.Encoding
	if classification.IsBinary {
		record.OmittedReason = OmittedBinary
		return record
	}

	decodedContent, decoded := classify.Decode(fileBytes, classification.Encoding)
	if !decoded {
		record.OmittedReason = OmittedBinary
		return record
	}

	outcome := redactionEngine.Redact(candidate.RelativePath, candidate.IsTemplate, decodedContent)
	if outcome.OmittedWhole {
		record.OmittedReason = OmittedRedactedWholeFile
		record.OmissionNote = outcome.Reason
		record.RedactionApplied = true
		return record
	}
	record.Content = outcome.Content
	record.RedactionApplied = outcome.Applied
	return record
}
