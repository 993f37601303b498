package tokenizer

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
	"golang.org/x/sync/errgroup"
)

// Report is the context-window accounting for one model. RemainingTokens may
// be negative and UsagePercent may exceed 100; overflow is reported, never
// treated as an error.
type Report struct {
	ModelName        string
	TokenCount       int
	MaxContextTokens int
	UsagePercent     float64
	RemainingTokens  int
}

// DocumentStats are model-independent measurements of a document.
type DocumentStats struct {
	CharacterCount int
	LineCount      int
	CodeBlockCount int
}

// Estimate tokenizes text once per distinct encoding in the catalog and
// derives one report per model. The input is never mutated and identical
// input always yields identical counts.
func Estimate(text string, models []Model) ([]Report, error) {
	if len(models) == 0 {
		models = DefaultModels()
	}

	encodingNames := make([]string, 0, len(models))
	seenEncodings := map[string]struct{}{}
	for _, model := range models {
		encodingName := model.TokenizerID
		if encodingName == "" {
			encodingName = defaultEncodingName
		}
		if _, seen := seenEncodings[encodingName]; seen {
			continue
		}
		seenEncodings[encodingName] = struct{}{}
		encodingNames = append(encodingNames, encodingName)
	}

	baselineCounts := make(map[string]int, len(encodingNames))
	var baselineMutex sync.Mutex
	var group errgroup.Group
	for _, encodingName := range encodingNames {
		encodingName := encodingName
		group.Go(func() error {
			encoding, encodingError := tiktoken.GetEncoding(encodingName)
			if encodingError != nil {
				return fmt.Errorf("initialize tokenizer %s: %w", encodingName, encodingError)
			}
			tokenCount := len(encoding.Encode(text, nil, nil))
			baselineMutex.Lock()
			baselineCounts[encodingName] = tokenCount
			baselineMutex.Unlock()
			return nil
		})
	}
	if waitError := group.Wait(); waitError != nil {
		return nil, waitError
	}

	reports := make([]Report, 0, len(models))
	for _, model := range models {
		encodingName := model.TokenizerID
		if encodingName == "" {
			encodingName = defaultEncodingName
		}
		estimatedTokens := int(float64(baselineCounts[encodingName]) * model.Multiplier)
		usagePercent := 0.0
		if model.MaxContextTokens > 0 {
			usagePercent = float64(estimatedTokens) / float64(model.MaxContextTokens) * 100
		}
		reports = append(reports, Report{
			ModelName:        model.Name,
			TokenCount:       estimatedTokens,
			MaxContextTokens: model.MaxContextTokens,
			UsagePercent:     usagePercent,
			RemainingTokens:  model.MaxContextTokens - estimatedTokens,
		})
	}
	return reports, nil
}

// Stats measures model-independent document statistics: character count,
// line count, and the number of fenced code blocks.
func Stats(text string) DocumentStats {
	lineCount := strings.Count(text, "\n")
	if text != "" && !strings.HasSuffix(text, "\n") {
		lineCount++
	}
	fenceCount := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			fenceCount++
		}
	}
	return DocumentStats{
		CharacterCount: utf8.RuneCountInString(text),
		LineCount:      lineCount,
		CodeBlockCount: fenceCount / 2,
	}
}
