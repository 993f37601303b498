// Package config provides the static rule tables consumed by the snapshot
// engine and loads optional application configuration files.
package config

import (
	"path/filepath"
	"strings"
)

// DefaultMaxFileSizeBytes is the size threshold above which files are listed
// but their content omitted.
const DefaultMaxFileSizeBytes int64 = 1 << 20

// defaultIgnorePatterns are always-on exclusion patterns applied before any
// discovered ignore file.
var defaultIgnorePatterns = []string{
	".git/",
	"node_modules/",
	"dist/",
	"build/",
	"coverage/",
	".DS_Store",
	"*.log",
	"*.lock",
	"package-lock.json",
	"__pycache__/",
	"*.pyc",
	"*.pyo",
	"*.pyd",
	".Python",
	"env/",
	"venv/",
	".venv/",
	"ENV/",
	"env.bak/",
	"venv.bak/",
}

// commonReferenceFiles are skipped when the caller opts out of boilerplate
// project files.
var commonReferenceFiles = map[string]struct{}{
	"LICENSE":            {},
	"LICENSE.md":         {},
	"LICENSE.txt":        {},
	"CONTRIBUTING":       {},
	"CONTRIBUTING.md":    {},
	"CODE_OF_CONDUCT":    {},
	"CODE_OF_CONDUCT.md": {},
	"CHANGELOG":          {},
	"CHANGELOG.md":       {},
	"SECURITY":           {},
	"SECURITY.md":        {},
	".gitattributes":     {},
	".editorconfig":      {},
	".dockerignore":      {},
}

// templateSuffixes mark files whose content is placeholder-only and therefore
// exempt from whole-file suppression.
var templateSuffixes = []string{
	".example",
	".sample",
	".template",
	".dist",
	"example.yml",
	"sample.yml",
	".example.json",
	".sample.json",
	".template.yaml",
	".template.yml",
}

// strippableTemplateExtensions are the template suffixes that hide the real
// file name as a plain trailing extension.
var strippableTemplateExtensions = []string{".example", ".sample", ".template", ".dist"}

// DefaultIgnorePatterns returns a fresh copy of the built-in exclusion
// patterns so callers can append without mutating shared state.
func DefaultIgnorePatterns() []string {
	patterns := make([]string, len(defaultIgnorePatterns))
	copy(patterns, defaultIgnorePatterns)
	return patterns
}

// IsCommonReferenceFile reports whether fileName is project boilerplate such
// as a license or changelog. README variants are matched by prefix.
func IsCommonReferenceFile(fileName string) bool {
	if _, listed := commonReferenceFiles[fileName]; listed {
		return true
	}
	return strings.HasPrefix(strings.ToUpper(fileName), "README")
}

// IsTemplateFile reports whether the file at path is a recognized template
// or example file.
func IsTemplateFile(path string) bool {
	lowerName := strings.ToLower(filepath.Base(path))
	for _, suffix := range templateSuffixes {
		if strings.HasSuffix(lowerName, suffix) {
			return true
		}
	}
	return false
}

// StripTemplateSuffix returns the file name a template stands in for, so
// "config.yml.example" resolves to "config.yml". Names whose template marker
// is not a plain trailing extension are returned unchanged.
func StripTemplateSuffix(fileName string) string {
	lowerName := strings.ToLower(fileName)
	for _, extension := range strippableTemplateExtensions {
		if strings.HasSuffix(lowerName, extension) {
			return fileName[:len(fileName)-len(extension)]
		}
	}
	return fileName
}
