// Package classify determines whether a file is binary, sniffs its character
// encoding, and derives a display language tag from its extension. All
// classification is best-effort: the worst outcome is a file marked binary
// with its content omitted, never a failed run.
package classify

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// SniffLength is the maximum number of bytes inspected when detecting binary
// content and character encodings.
const SniffLength = 8000

// Known encoding labels reported by DetectEncoding.
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF16LE = "utf-16le"
	EncodingUTF16BE = "utf-16be"
	EncodingUnknown = ""
)

// nonTextRatioThreshold is the fraction of control bytes above which a sniffed
// prefix is considered binary.
const nonTextRatioThreshold = 0.30

// Result is the classification of a single file.
type Result struct {
	IsBinary bool
	Encoding string
	Language string
}

// Classify inspects the sniffed prefix of the file at path and returns its
// classification. The prefix may be shorter than SniffLength for small files.
func Classify(path string, prefix []byte) Result {
	language := Language(path)
	if hasBinaryExtension(path) {
		return Result{IsBinary: true, Encoding: EncodingUnknown, Language: language}
	}
	encoding, decodable := DetectEncoding(prefix)
	if !decodable {
		return Result{IsBinary: true, Encoding: EncodingUnknown, Language: language}
	}
	return Result{IsBinary: false, Encoding: encoding, Language: language}
}

// DetectEncoding sniffs the character encoding of data. The second return
// value is false when the data cannot be treated as text.
func DetectEncoding(data []byte) (string, bool) {
	if len(data) == 0 {
		return EncodingUTF8, true
	}
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return EncodingUTF8, true
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return EncodingUTF16LE, true
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return EncodingUTF16BE, true
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return EncodingUnknown, false
	}
	if utf8.Valid(data) {
		if nonTextRatio(data) > nonTextRatioThreshold {
			return EncodingUnknown, false
		}
		return EncodingUTF8, true
	}
	return EncodingUnknown, false
}

// IsBinary reports whether data appears to contain binary content.
func IsBinary(data []byte) bool {
	_, decodable := DetectEncoding(data)
	return !decodable
}

// Decode converts raw file bytes into a UTF-8 string according to the sniffed
// encoding. The second return value is false when decoding fails.
func Decode(data []byte, encoding string) (string, bool) {
	switch encoding {
	case EncodingUTF8:
		return string(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})), true
	case EncodingUTF16LE:
		return decodeUTF16(data, unicode.LittleEndian)
	case EncodingUTF16BE:
		return decodeUTF16(data, unicode.BigEndian)
	default:
		return "", false
	}
}

func decodeUTF16(data []byte, byteOrder unicode.Endianness) (string, bool) {
	decoder := unicode.UTF16(byteOrder, unicode.UseBOM).NewDecoder()
	decoded, _, decodeError := transform.Bytes(decoder, data)
	if decodeError != nil {
		return "", false
	}
	return string(decoded), true
}

// nonTextRatio measures the fraction of bytes outside the printable range.
// Tabs, newlines, and carriage returns count as text.
func nonTextRatio(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}
	nonTextCount := 0
	for _, byteValue := range data {
		if byteValue < 0x20 && byteValue != '\t' && byteValue != '\n' && byteValue != '\r' {
			nonTextCount++
		}
	}
	return float64(nonTextCount) / float64(len(data))
}

// hasBinaryExtension reports whether the file extension is a well-known
// binary format, short-circuiting content sniffing.
func hasBinaryExtension(path string) bool {
	extension := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	_, listed := binaryExtensions[extension]
	return listed
}
