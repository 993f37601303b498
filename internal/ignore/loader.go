package ignore

import (
	"bufio"
	"os"
	"path/filepath"
)

// GitIgnoreFileName is the name of the VCS ignore file discovered while walking.
const GitIgnoreFileName = ".gitignore"

// LoadDirectoryRules reads the ignore file inside absoluteDirectory and
// returns its rules scoped to relativeDirectory. A missing or unreadable
// ignore file yields no rules; an individual bad line degrades to a literal
// match rather than failing the walk.
func LoadDirectoryRules(absoluteDirectory, relativeDirectory string) []Rule {
	ignoreFilePath := filepath.Join(absoluteDirectory, GitIgnoreFileName)
	fileHandle, openError := os.Open(ignoreFilePath)
	if openError != nil {
		return nil
	}
	defer fileHandle.Close()

	var lines []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if scanner.Err() != nil {
		return nil
	}
	return ParseLines(lines, relativeDirectory)
}
