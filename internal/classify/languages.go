package classify

import (
	"path/filepath"
	"strings"
)

// binaryExtensions are formats never worth sniffing for text content.
var binaryExtensions = map[string]struct{}{
	// Images
	"png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "bmp": {}, "tiff": {},
	"webp": {}, "ico": {}, "svg": {}, "psd": {}, "ai": {}, "eps": {}, "raw": {},
	// Documents and archives
	"pdf": {}, "doc": {}, "docx": {}, "xls": {}, "xlsx": {}, "ppt": {},
	"pptx": {}, "zip": {}, "tar": {}, "gz": {}, "rar": {}, "7z": {}, "bz2": {}, "iso": {},
	// Executables and libraries
	"exe": {}, "dll": {}, "so": {}, "dylib": {}, "lib": {}, "obj": {},
	"bin": {}, "apk": {}, "app": {}, "msi": {},
	// Fonts
	"ttf": {}, "otf": {}, "woff": {}, "woff2": {}, "eot": {},
	// Media
	"mp3": {}, "mp4": {}, "wav": {}, "ogg": {}, "avi": {}, "mov": {},
	"wmv": {}, "flv": {}, "mkv": {}, "aac": {}, "m4a": {}, "flac": {},
	// Databases
	"db": {}, "sqlite": {}, "sqlite3": {}, "mdb": {}, "frm": {}, "ibd": {},
	// Other binary formats
	"class": {}, "pyc": {}, "pyo": {}, "pyd": {}, "o": {}, "a": {}, "pkl": {}, "dat": {},
}

// extensionLanguages maps file extensions to syntax-highlighting identifiers.
var extensionLanguages = map[string]string{
	"js":         "javascript",
	"jsx":        "javascript",
	"mjs":        "javascript",
	"cjs":        "javascript",
	"ts":         "typescript",
	"tsx":        "typescript",
	"py":         "python",
	"rb":         "ruby",
	"java":       "java",
	"cpp":        "cpp",
	"cc":         "cpp",
	"cxx":        "cpp",
	"c":          "c",
	"h":          "c",
	"cs":         "csharp",
	"php":        "php",
	"go":         "go",
	"rs":         "rust",
	"swift":      "swift",
	"kt":         "kotlin",
	"r":          "r",
	"sql":        "sql",
	"yaml":       "yaml",
	"yml":        "yaml",
	"toml":       "toml",
	"json":       "json",
	"md":         "markdown",
	"html":       "html",
	"css":        "css",
	"scss":       "scss",
	"less":       "less",
	"sh":         "bash",
	"bash":       "bash",
	"zsh":        "bash",
	"lua":        "lua",
	"ex":         "elixir",
	"exs":        "elixir",
	"hs":         "haskell",
	"scala":      "scala",
	"proto":      "protobuf",
	"tf":         "terraform",
	"xml":        "xml",
	"dockerfile": "dockerfile",
}

// namedFileLanguages maps well-known extensionless file names to languages.
var namedFileLanguages = map[string]string{
	"Dockerfile": "dockerfile",
	"Makefile":   "makefile",
	"Gemfile":    "ruby",
	"Rakefile":   "ruby",
}

// Language returns the syntax-highlighting identifier for the file at path,
// or an empty string for unknown extensions (rendered as plain text).
func Language(path string) string {
	fileName := filepath.Base(path)
	if language, known := namedFileLanguages[fileName]; known {
		return language
	}
	extension := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if language, known := extensionLanguages[extension]; known {
		return language
	}
	// A trailing template suffix hides the real extension; classify by the
	// next inner extension so config.yml.example highlights as yaml.
	switch extension {
	case "example", "sample", "template", "dist":
		return Language(strings.TrimSuffix(fileName, filepath.Ext(fileName)))
	}
	return ""
}
