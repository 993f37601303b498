package snapshot

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestFile(t *testing.T, root, relativePath string, content []byte) {
	t.Helper()
	absolutePath := filepath.Join(root, filepath.FromSlash(relativePath))
	if mkdirError := os.MkdirAll(filepath.Dir(absolutePath), 0o755); mkdirError != nil {
		t.Fatalf("mkdir for %s: %v", relativePath, mkdirError)
	}
	if writeError := os.WriteFile(absolutePath, content, 0o644); writeError != nil {
		t.Fatalf("write %s: %v", relativePath, writeError)
	}
}

func TestBuildInvalidRoot(t *testing.T) {
	if _, buildError := Build(Options{Root: filepath.Join(t.TempDir(), "missing")}); buildError == nil {
		t.Fatalf("expected configuration error for invalid root")
	}
}

func TestBuildSecretScenario(t *testing.T) {
	root := t.TempDir()
	secretValue := "API_KEY=abcdef123456"
	writeTestFile(t, root, "app.py", []byte(strings.Repeat("print('ok')\n", 17)[:200]))
	writeTestFile(t, root, ".env", []byte(secretValue+"\n"))
	writeTestFile(t, root, "config.yml.example", []byte("database:\n  password: CHANGE_ME\n"))
	writeTestFile(t, root, "asset.bin", bytes.Repeat([]byte{0x00, 0x01}, 1<<20))

	builtSnapshot, buildError := Build(Options{Root: root, MaxFileSizeBytes: 1 << 20})
	if buildError != nil {
		t.Fatalf("Build: %v", buildError)
	}

	if builtSnapshot.FileCount != 2 {
		t.Fatalf("FileCount = %d, expected 2", builtSnapshot.FileCount)
	}
	if builtSnapshot.SkippedCount != 2 {
		t.Fatalf("SkippedCount = %d, expected 2", builtSnapshot.SkippedCount)
	}
	if strings.Contains(builtSnapshot.GeneratedText, "abcdef123456") {
		t.Fatalf(".env content leaked into generated text")
	}
	if !strings.Contains(builtSnapshot.GeneratedText, "[REDACTED - Environment Variables]") {
		t.Fatalf("expected .env suppression marker in document")
	}
	if !strings.Contains(builtSnapshot.GeneratedText, "config.yml.example") {
		t.Fatalf("template file missing from document")
	}
	if !strings.Contains(builtSnapshot.GeneratedText, "database:") {
		t.Fatalf("template structure must be preserved")
	}
	if !strings.Contains(builtSnapshot.GeneratedText, "template — placeholders only") {
		t.Fatalf("expected visible template marker")
	}
	if !strings.Contains(builtSnapshot.GeneratedText, "File too large") {
		t.Fatalf("expected too-large notice for asset.bin")
	}
}

func TestBuildAggregateInvariants(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "main.go", []byte("package main\n"))
	writeTestFile(t, root, "lib/util.py", []byte("def util():\n    pass\n"))
	writeTestFile(t, root, "data.bin", []byte{0x00, 0x01, 0x02})

	builtSnapshot, buildError := Build(Options{Root: root})
	if buildError != nil {
		t.Fatalf("Build: %v", buildError)
	}

	expectedTotal := int64(len("package main\n") + len("def util():\n    pass\n"))
	if builtSnapshot.TotalSizeBytes != expectedTotal {
		t.Fatalf("TotalSizeBytes = %d, expected %d", builtSnapshot.TotalSizeBytes, expectedTotal)
	}
	if builtSnapshot.FileCount != 2 || builtSnapshot.SkippedCount != 1 {
		t.Fatalf("unexpected counts: files=%d skipped=%d", builtSnapshot.FileCount, builtSnapshot.SkippedCount)
	}
	if builtSnapshot.LanguageBreakdown["go"] != 1 || builtSnapshot.LanguageBreakdown["python"] != 1 {
		t.Fatalf("unexpected language breakdown: %v", builtSnapshot.LanguageBreakdown)
	}
}

func TestBuildDeterministic(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "b.go", []byte("package b\n"))
	writeTestFile(t, root, "a.go", []byte("package a\n"))
	writeTestFile(t, root, "sub/c.py", []byte("pass\n"))

	firstSnapshot, firstError := Build(Options{Root: root, IncludeSummary: true})
	if firstError != nil {
		t.Fatalf("first Build: %v", firstError)
	}
	secondSnapshot, secondError := Build(Options{Root: root, IncludeSummary: true})
	if secondError != nil {
		t.Fatalf("second Build: %v", secondError)
	}
	if firstSnapshot.GeneratedText != secondSnapshot.GeneratedText {
		t.Fatalf("two runs on an unchanged tree differ")
	}
}

func TestBuildRedactsContentInPlace(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "settings.py", []byte("DEBUG = True\nSECRET = \"abcdefghijklmnop\"\n"))

	builtSnapshot, buildError := Build(Options{Root: root})
	if buildError != nil {
		t.Fatalf("Build: %v", buildError)
	}
	if strings.Contains(builtSnapshot.GeneratedText, "abcdefghijklmnop") {
		t.Fatalf("secret assignment leaked")
	}
	if !strings.Contains(builtSnapshot.GeneratedText, "DEBUG = True") {
		t.Fatalf("non-secret lines must survive redaction")
	}
}

func TestBuildDocumentLayout(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "main.go", []byte("package main\n"))

	builtSnapshot, buildError := Build(Options{Root: root, IncludeSummary: true})
	if buildError != nil {
		t.Fatalf("Build: %v", buildError)
	}
	document := builtSnapshot.GeneratedText

	structureIndex := strings.Index(document, "## Project Structure")
	fileIndex := strings.Index(document, "## main.go")
	summaryIndex := strings.Index(document, "## Summary")
	if !strings.HasPrefix(document, "# Project Source Code") {
		t.Fatalf("missing document header")
	}
	if structureIndex < 0 || fileIndex < 0 || summaryIndex < 0 {
		t.Fatalf("missing sections: structure=%d file=%d summary=%d", structureIndex, fileIndex, summaryIndex)
	}
	if !(structureIndex < fileIndex && fileIndex < summaryIndex) {
		t.Fatalf("sections out of order: structure=%d file=%d summary=%d", structureIndex, fileIndex, summaryIndex)
	}
	if !strings.Contains(document, "```go\npackage main\n```") {
		t.Fatalf("file section not fenced with language tag:\n%s", document)
	}
}

func TestBuildExcludesOwnOutput(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "main.go", []byte("package main\n"))
	outputPath := filepath.Join(root, "proj_source.md")
	writeTestFile(t, root, "proj_source.md", []byte("# previous run\n"))

	builtSnapshot, buildError := Build(Options{Root: root, OutputPath: outputPath})
	if buildError != nil {
		t.Fatalf("Build: %v", buildError)
	}
	if strings.Contains(builtSnapshot.GeneratedText, "previous run") {
		t.Fatalf("snapshot includes its own output file")
	}
}

func TestBuildRecordsUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skipf("file permissions are not enforced for root")
	}
	root := t.TempDir()
	writeTestFile(t, root, "app.go", []byte("package app\n"))
	writeTestFile(t, root, "locked.txt", []byte("hidden\n"))
	lockedPath := filepath.Join(root, "locked.txt")
	if chmodError := os.Chmod(lockedPath, 0o000); chmodError != nil {
		t.Fatalf("chmod: %v", chmodError)
	}
	t.Cleanup(func() { os.Chmod(lockedPath, 0o644) })

	builtSnapshot, buildError := Build(Options{Root: root})
	if buildError != nil {
		t.Fatalf("an unreadable entry must not fail the run: %v", buildError)
	}
	if builtSnapshot.FileCount != 1 || builtSnapshot.SkippedCount != 1 {
		t.Fatalf("unexpected counts: files=%d skipped=%d", builtSnapshot.FileCount, builtSnapshot.SkippedCount)
	}
	if !strings.Contains(builtSnapshot.GeneratedText, "## locked.txt") {
		t.Fatalf("unreadable entry missing from document")
	}
	if !strings.Contains(builtSnapshot.GeneratedText, "*[Error reading file]*") {
		t.Fatalf("expected error notice for locked.txt:\n%s", builtSnapshot.GeneratedText)
	}
	if !strings.Contains(builtSnapshot.GeneratedText, "package app") {
		t.Fatalf("the walk must continue past the unreadable entry")
	}
}

func TestAssemblerOmissionNotices(t *testing.T) {
	assembler := NewAssembler(false)
	assembler.Add(FileRecord{RelativePath: "a.bin", SizeBytes: 10, OmittedReason: OmittedBinary})
	assembler.Add(FileRecord{RelativePath: "big.txt", SizeBytes: 99, OmittedReason: OmittedTooLarge})
	assembler.Add(FileRecord{RelativePath: ".env", SizeBytes: 5, OmittedReason: OmittedRedactedWholeFile, OmissionNote: "[REDACTED - Environment Variables]", RedactionApplied: true})
	builtSnapshot := assembler.Finish()

	if builtSnapshot.FileCount != 0 || builtSnapshot.SkippedCount != 3 {
		t.Fatalf("unexpected counts: %+v", builtSnapshot)
	}
	if builtSnapshot.TotalSizeBytes != 0 {
		t.Fatalf("omitted records must not contribute to TotalSizeBytes")
	}
	for _, notice := range []string{"*[Binary file]*", "*[File too large]*", "*[REDACTED - Environment Variables]*"} {
		if !strings.Contains(builtSnapshot.GeneratedText, notice) {
			t.Fatalf("missing notice %q in:\n%s", notice, builtSnapshot.GeneratedText)
		}
	}
}
