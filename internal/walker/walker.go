// Package walker enumerates the files under a scan root in a deterministic,
// depth-first order, applying exclusion rules discovered along the way.
package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/scharc/snaprepo/internal/config"
	"github.com/scharc/snaprepo/internal/ignore"
)

// Candidate is a filesystem entry that passed exclusion checks and is handed
// to the downstream pipeline. Oversized or unreadable entries are still
// yielded, flagged for omission, so the snapshot can report a skip count.
type Candidate struct {
	AbsolutePath string
	RelativePath string
	SizeBytes    int64
	IsTemplate   bool
	// Oversize marks files exceeding the configured size limit.
	Oversize bool
	// Unreadable marks entries the walker could not stat or read. Their
	// content is never loaded; downstream records them as skips.
	Unreadable bool
}

// Options configures one walk. Each walk is a fresh pass; the walker holds no
// state between invocations.
type Options struct {
	Root              string
	Rules             *ignore.RuleSet
	MaxFileSizeBytes  int64
	SkipCommon        bool
	ExtraSkipPatterns []string
	// ExcludeAbsolutePaths lists resolved paths never included, such as the
	// output file the snapshot is being written to.
	ExcludeAbsolutePaths []string
	// Logger receives warnings for entries skipped on access errors. Nil
	// disables logging.
	Logger *zap.Logger
}

// VisitFunc receives every yielded candidate in walk order.
type VisitFunc func(candidate Candidate) error

// Walk traverses the tree under options.Root depth-first with directory
// entries in lexicographic order, calling visit for every qualifying file.
// Excluded directories are pruned without visiting their contents. An entry
// that cannot be accessed is yielded flagged Unreadable and the walk
// continues; only an invalid or unreadable root is fatal.
func Walk(options Options, visit VisitFunc) error {
	absoluteRoot, absolutePathError := filepath.Abs(options.Root)
	if absolutePathError != nil {
		return fmt.Errorf("resolve root %s: %w", options.Root, absolutePathError)
	}
	rootInfo, statError := os.Stat(absoluteRoot)
	if statError != nil {
		return fmt.Errorf("stat root %s: %w", absoluteRoot, statError)
	}
	if !rootInfo.IsDir() {
		return fmt.Errorf("root %s is not a directory", absoluteRoot)
	}

	rules := options.Rules
	if rules == nil {
		rules = ignore.NewRuleSet()
	}

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	state := &walkState{
		options:      options,
		absoluteRoot: absoluteRoot,
		visit:        visit,
		logger:       logger,
		visitedReal:  map[string]struct{}{},
	}
	if resolvedRoot, resolveError := filepath.EvalSymlinks(absoluteRoot); resolveError == nil {
		state.visitedReal[resolvedRoot] = struct{}{}
	}
	return state.walkDirectory(absoluteRoot, "", rules)
}

type walkState struct {
	options      Options
	absoluteRoot string
	visit        VisitFunc
	logger       *zap.Logger
	visitedReal  map[string]struct{}
}

func (state *walkState) walkDirectory(absoluteDirectory, relativeDirectory string, rules *ignore.RuleSet) error {
	directoryRules := rules
	if discoveredRules := ignore.LoadDirectoryRules(absoluteDirectory, relativeDirectory); len(discoveredRules) > 0 {
		directoryRules = rules.Clone()
		directoryRules.Add(discoveredRules...)
	}

	directoryEntries, readError := os.ReadDir(absoluteDirectory)
	if readError != nil {
		if relativeDirectory == "" {
			return fmt.Errorf("read root directory %s: %w", absoluteDirectory, readError)
		}
		// Permission or transient errors on a subdirectory never abort the
		// walk of sibling entries; the directory itself is recorded as a skip.
		state.logger.Warn("skipping unreadable directory",
			zap.String("path", relativeDirectory),
			zap.Error(readError))
		return state.visit(Candidate{
			AbsolutePath: absoluteDirectory,
			RelativePath: relativeDirectory,
			Unreadable:   true,
		})
	}
	sort.Slice(directoryEntries, func(firstIndex, secondIndex int) bool {
		return directoryEntries[firstIndex].Name() < directoryEntries[secondIndex].Name()
	})

	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		entryAbsolutePath := filepath.Join(absoluteDirectory, entryName)
		entryRelativePath := entryName
		if relativeDirectory != "" {
			entryRelativePath = relativeDirectory + "/" + entryName
		}

		entryInfo, entryStatError := os.Stat(entryAbsolutePath)
		if entryStatError != nil {
			// Broken symlink or vanished entry. Entries the rules would have
			// excluded anyway stay silent; everything else is recorded.
			if directoryRules.Matches(entryRelativePath, false) ||
				matchesAnyGlob(entryRelativePath, state.options.ExtraSkipPatterns) ||
				state.isExcludedAbsolutePath(entryAbsolutePath) {
				continue
			}
			state.logger.Warn("skipping unreadable entry",
				zap.String("path", entryRelativePath),
				zap.Error(entryStatError))
			if visitError := state.visit(Candidate{
				AbsolutePath: entryAbsolutePath,
				RelativePath: entryRelativePath,
				Unreadable:   true,
			}); visitError != nil {
				return visitError
			}
			continue
		}
		isDirectory := entryInfo.IsDir()

		if isDirectory {
			if directoryRules.Prunable(entryRelativePath) {
				continue
			}
			// Track resolved directory paths so a symlink pointing back into
			// an already-visited directory fails closed instead of cycling.
			resolvedPath, resolveError := filepath.EvalSymlinks(entryAbsolutePath)
			if resolveError != nil {
				state.logger.Warn("skipping unresolvable directory",
					zap.String("path", entryRelativePath),
					zap.Error(resolveError))
				if visitError := state.visit(Candidate{
					AbsolutePath: entryAbsolutePath,
					RelativePath: entryRelativePath,
					Unreadable:   true,
				}); visitError != nil {
					return visitError
				}
				continue
			}
			if _, alreadyVisited := state.visitedReal[resolvedPath]; alreadyVisited {
				continue
			}
			state.visitedReal[resolvedPath] = struct{}{}

			if walkError := state.walkDirectory(entryAbsolutePath, entryRelativePath, directoryRules); walkError != nil {
				return walkError
			}
			continue
		}

		if directoryRules.Matches(entryRelativePath, false) {
			continue
		}
		if matchesAnyGlob(entryRelativePath, state.options.ExtraSkipPatterns) {
			continue
		}
		if state.isExcludedAbsolutePath(entryAbsolutePath) {
			continue
		}
		isTemplate := config.IsTemplateFile(entryName)
		if state.options.SkipCommon && !isTemplate && config.IsCommonReferenceFile(entryName) {
			continue
		}

		candidate := Candidate{
			AbsolutePath: entryAbsolutePath,
			RelativePath: entryRelativePath,
			SizeBytes:    entryInfo.Size(),
			IsTemplate:   isTemplate,
			Oversize:     state.options.MaxFileSizeBytes > 0 && entryInfo.Size() > state.options.MaxFileSizeBytes,
		}
		if visitError := state.visit(candidate); visitError != nil {
			return visitError
		}
	}
	return nil
}

func (state *walkState) isExcludedAbsolutePath(absolutePath string) bool {
	for _, excludedPath := range state.options.ExcludeAbsolutePaths {
		if excludedPath != "" && absolutePath == excludedPath {
			return true
		}
	}
	return false
}

// matchesAnyGlob evaluates user-supplied skip globs against the relative path
// and its base name. An unparseable glob falls back to literal comparison.
func matchesAnyGlob(relativePath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	baseName := filepath.Base(relativePath)
	for _, pattern := range patterns {
		normalizedPattern := strings.TrimPrefix(pattern, "./")
		for _, candidate := range []string{relativePath, baseName} {
			matched, matchError := filepath.Match(normalizedPattern, candidate)
			if matchError != nil {
				if normalizedPattern == candidate {
					return true
				}
				continue
			}
			if matched {
				return true
			}
		}
	}
	return false
}
