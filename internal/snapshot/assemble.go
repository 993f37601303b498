package snapshot

import (
	"fmt"
	"sort"
	"strings"
)

const (
	documentHeader     = "# Project Source Code\n"
	structureHeader    = "## Project Structure"
	summaryHeader      = "## Summary"
	binaryNote         = "*[Binary file]*"
	tooLargeNote       = "*[File too large]*"
	unreadableNote     = "*[Error reading file]*"
	unknownLanguageTag = "text"
)

// Assembler accumulates file records into the output document in a single
// linear pass. Aggregates are maintained incrementally so the trailing
// summary never re-scans files.
type Assembler struct {
	body              strings.Builder
	tree              treeBuilder
	fileCount         int
	totalSizeBytes    int64
	skippedCount      int
	languageBreakdown map[string]int
	includeSummary    bool
}

// NewAssembler constructs an empty assembler.
func NewAssembler(includeSummary bool) *Assembler {
	return &Assembler{
		languageBreakdown: map[string]int{},
		includeSummary:    includeSummary,
	}
}

// Add appends one record's section to the document and updates aggregates.
// Records must arrive in walk order; the assembler never reorders them.
func (assembler *Assembler) Add(record FileRecord) {
	annotation := ""
	if record.OmittedReason == OmittedRedactedWholeFile {
		annotation = record.OmissionNote
	}
	assembler.tree.add(record.RelativePath, annotation)

	assembler.body.WriteString(fmt.Sprintf("\n## %s\n", record.RelativePath))
	if record.OmittedReason != OmittedNone {
		assembler.skippedCount++
		assembler.body.WriteString(fmt.Sprintf("\n*%s*\n", assembler.omissionNote(record)))
		return
	}

	assembler.fileCount++
	assembler.totalSizeBytes += record.SizeBytes
	assembler.languageBreakdown[languageOrDefault(record.Language)]++

	assembler.body.WriteString(fmt.Sprintf("\n```%s\n", record.Language))
	assembler.body.WriteString(record.Content)
	if !strings.HasSuffix(record.Content, "\n") {
		assembler.body.WriteString("\n")
	}
	assembler.body.WriteString("```\n")
}

// Finish seals the document and returns the snapshot. The assembler must not
// be reused afterward.
func (assembler *Assembler) Finish() *Snapshot {
	var document strings.Builder
	document.WriteString(documentHeader)
	document.WriteString("\n" + structureHeader + "\n")
	document.WriteString(assembler.tree.render())
	document.WriteString(assembler.body.String())
	if assembler.includeSummary {
		document.WriteString(assembler.renderSummary())
	}

	return &Snapshot{
		GeneratedText:     document.String(),
		FileCount:         assembler.fileCount,
		TotalSizeBytes:    assembler.totalSizeBytes,
		SkippedCount:      assembler.skippedCount,
		LanguageBreakdown: assembler.languageBreakdown,
	}
}

func (assembler *Assembler) omissionNote(record FileRecord) string {
	switch record.OmittedReason {
	case OmittedRedactedWholeFile:
		return record.OmissionNote
	case OmittedTooLarge:
		return strings.Trim(tooLargeNote, "*")
	case OmittedUnreadable:
		return strings.Trim(unreadableNote, "*")
	default:
		return strings.Trim(binaryNote, "*")
	}
}

func (assembler *Assembler) renderSummary() string {
	var summary strings.Builder
	summary.WriteString("\n" + summaryHeader + "\n\n")
	summary.WriteString(fmt.Sprintf("- Files included: %d\n", assembler.fileCount))
	summary.WriteString(fmt.Sprintf("- Files skipped: %d\n", assembler.skippedCount))
	summary.WriteString(fmt.Sprintf("- Total size: %d bytes\n", assembler.totalSizeBytes))

	languages := make([]string, 0, len(assembler.languageBreakdown))
	for language := range assembler.languageBreakdown {
		languages = append(languages, language)
	}
	sort.Strings(languages)
	for _, language := range languages {
		summary.WriteString(fmt.Sprintf("- %s: %d\n", language, assembler.languageBreakdown[language]))
	}
	return summary.String()
}

func languageOrDefault(language string) string {
	if language == "" {
		return unknownLanguageTag
	}
	return language
}
