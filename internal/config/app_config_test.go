package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigurationFile(t *testing.T, directory string, content string) string {
	t.Helper()
	path := filepath.Join(directory, ConfigFileName)
	if writeError := os.WriteFile(path, []byte(content), 0o644); writeError != nil {
		t.Fatalf("write configuration fixture: %v", writeError)
	}
	return path
}

func TestLoadApplicationConfigurationMissingFilesNotError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	configuration, loadError := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: t.TempDir()})
	if loadError != nil {
		t.Fatalf("missing configuration files must not be an error: %v", loadError)
	}
	if configuration.Snap.MaxFileSizeBytes != nil || configuration.Snap.Output != "" {
		t.Fatalf("expected zero configuration, got %+v", configuration)
	}
}

func TestLoadApplicationConfigurationLocalOverridesGlobal(t *testing.T) {
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	globalDirectory := filepath.Join(homeDirectory, GlobalConfigDirectoryName)
	if makeError := os.MkdirAll(globalDirectory, 0o755); makeError != nil {
		t.Fatalf("create global configuration directory: %v", makeError)
	}
	writeConfigurationFile(t, globalDirectory, "snap:\n  max_file_size: 2048\n  skip_common: true\n  output: global.md\n")

	workingDirectory := t.TempDir()
	writeConfigurationFile(t, workingDirectory, "snap:\n  output: local.md\n")

	configuration, loadError := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	if loadError != nil {
		t.Fatalf("LoadApplicationConfiguration: %v", loadError)
	}
	if configuration.Snap.Output != "local.md" {
		t.Fatalf("local output must override global, got %q", configuration.Snap.Output)
	}
	if configuration.Snap.MaxFileSizeBytes == nil || *configuration.Snap.MaxFileSizeBytes != 2048 {
		t.Fatalf("global max_file_size must survive the merge, got %+v", configuration.Snap.MaxFileSizeBytes)
	}
	if configuration.Snap.SkipCommon == nil || !*configuration.Snap.SkipCommon {
		t.Fatalf("global skip_common must survive the merge")
	}
}

func TestLoadApplicationConfigurationExplicitPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	workingDirectory := t.TempDir()
	explicitPath := filepath.Join(workingDirectory, "custom.yaml")
	if writeError := os.WriteFile(explicitPath, []byte("tokens:\n  models:\n    - claude\n"), 0o644); writeError != nil {
		t.Fatalf("write configuration fixture: %v", writeError)
	}

	configuration, loadError := LoadApplicationConfiguration(LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: "custom.yaml",
	})
	if loadError != nil {
		t.Fatalf("LoadApplicationConfiguration: %v", loadError)
	}
	if len(configuration.Tokens.Models) != 1 || configuration.Tokens.Models[0] != "claude" {
		t.Fatalf("expected models from explicit file, got %+v", configuration.Tokens.Models)
	}
}

func TestLoadApplicationConfigurationMalformedFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	workingDirectory := t.TempDir()
	writeConfigurationFile(t, workingDirectory, "snap: [unclosed\n")

	if _, loadError := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory}); loadError == nil {
		t.Fatalf("expected error for malformed configuration file")
	}
}

func TestMergeOverridePrecedence(t *testing.T) {
	baseSize := int64(1024)
	baseSummary := false
	base := ApplicationConfiguration{
		Snap: SnapConfiguration{
			MaxFileSizeBytes: &baseSize,
			Summary:          &baseSummary,
			SkipFiles:        []string{"*.tmp"},
			Output:           "base.md",
		},
	}
	overrideSummary := true
	override := ApplicationConfiguration{
		Snap: SnapConfiguration{
			Summary:   &overrideSummary,
			SkipFiles: []string{"*.bak", "*.old"},
		},
	}

	merged := base.Merge(override)
	if merged.Snap.MaxFileSizeBytes == nil || *merged.Snap.MaxFileSizeBytes != 1024 {
		t.Fatalf("unset override must keep base max size")
	}
	if merged.Snap.Summary == nil || !*merged.Snap.Summary {
		t.Fatalf("set override must replace base summary")
	}
	if len(merged.Snap.SkipFiles) != 2 || merged.Snap.SkipFiles[0] != "*.bak" {
		t.Fatalf("override skip files must replace base list, got %+v", merged.Snap.SkipFiles)
	}
	if merged.Snap.Output != "base.md" {
		t.Fatalf("empty override output must keep base value")
	}

	*override.Snap.Summary = false
	if merged.Snap.Summary == nil || !*merged.Snap.Summary {
		t.Fatalf("merge must clone pointer values, not share them")
	}
}
