package snapshot

import "strings"

// treeBuilder renders the project-structure section from the stream of
// record paths. Paths arrive in walk order, so parent directories are emitted
// the first time any of their descendants appears.
type treeBuilder struct {
	lines    []string
	seenDirs map[string]struct{}
}

func (builder *treeBuilder) add(relativePath, annotation string) {
	if builder.seenDirs == nil {
		builder.seenDirs = map[string]struct{}{}
	}
	segments := strings.Split(relativePath, "/")
	for segmentIndex := 0; segmentIndex < len(segments)-1; segmentIndex++ {
		directoryPath := strings.Join(segments[:segmentIndex+1], "/")
		if _, seen := builder.seenDirs[directoryPath]; seen {
			continue
		}
		builder.seenDirs[directoryPath] = struct{}{}
		builder.lines = append(builder.lines, renderTreeLine(segments[segmentIndex]+"/", segmentIndex, ""))
	}
	builder.lines = append(builder.lines, renderTreeLine(segments[len(segments)-1], len(segments)-1, annotation))
}

func (builder *treeBuilder) render() string {
	rendered := []string{"```", "."}
	rendered = append(rendered, builder.lines...)
	rendered = append(rendered, "```", "")
	return strings.Join(rendered, "\n")
}

func renderTreeLine(name string, level int, annotation string) string {
	prefix := ""
	if level > 0 {
		prefix = strings.Repeat("│   ", level-1) + "├── "
	}
	line := prefix + name
	if annotation != "" {
		line += " " + annotation
	}
	return line
}
