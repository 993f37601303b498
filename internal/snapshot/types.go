// Package snapshot assembles classified, redacted file contents into a single
// formatted document together with run statistics.
package snapshot

// OmittedReason explains why a file's content is absent from the document.
type OmittedReason string

// Reasons a record's content may be omitted.
const (
	OmittedNone              OmittedReason = ""
	OmittedBinary            OmittedReason = "binary"
	OmittedTooLarge          OmittedReason = "too-large"
	OmittedRedactedWholeFile OmittedReason = "redacted-whole-file"
	OmittedUnreadable        OmittedReason = "unreadable"
)

// FileRecord is one processed file. Records are immutable once produced and
// owned by the assembler for the duration of a run.
type FileRecord struct {
	RelativePath string
	SizeBytes    int64
	Encoding     string
	Language     string
	// Content is empty whenever OmittedReason is set.
	Content       string
	OmittedReason OmittedReason
	// OmissionNote is the human-readable marker rendered instead of content.
	OmissionNote     string
	RedactionApplied bool
}

// Snapshot is the single immutable output of a run.
type Snapshot struct {
	GeneratedText     string
	FileCount         int
	TotalSizeBytes    int64
	SkippedCount      int
	LanguageBreakdown map[string]int
}
