// Package ignore implements gitignore-style exclusion rules with negation
// support and layered, depth-ordered precedence.
package ignore

import (
	"path/filepath"
	"strings"
)

const (
	negationPrefix       = "!"
	commentPrefix        = "#"
	pathSegmentSeparator = "/"
	anySegmentsWildcard  = "**"
)

// Rule is a single exclusion pattern together with its provenance. Rules are
// immutable once parsed; precedence is carried entirely by Depth and
// SourceOrder.
type Rule struct {
	// Pattern is the raw pattern with any negation prefix removed.
	Pattern string
	// IsNegation reports whether the rule re-includes matching paths.
	IsNegation bool
	// BaseDirectory is the directory, relative to the scan root, in which the
	// rule was discovered. Empty for root-level and built-in rules.
	BaseDirectory string
	// Depth is the number of path segments between the scan root and the rule's
	// source. Deeper rules are evaluated later and therefore win conflicts.
	Depth int
	// SourceOrder preserves the original ordering of rules that share a depth.
	SourceOrder int
}

// RuleSet is an ordered collection of rules evaluated with last-match-wins
// semantics.
type RuleSet struct {
	rules     []Rule
	nextOrder int
}

// NewRuleSet constructs an empty rule set.
func NewRuleSet() *RuleSet {
	return &RuleSet{}
}

// ParseLines converts raw ignore-file lines into rules discovered at
// baseDirectory. Blank lines and comments are dropped. A pattern that cannot
// be compiled is still kept; it degrades to a literal string match during
// evaluation.
func ParseLines(lines []string, baseDirectory string) []Rule {
	normalizedBase := normalizePath(baseDirectory)
	depth := 0
	if normalizedBase != "" {
		depth = strings.Count(normalizedBase, pathSegmentSeparator) + 1
	}

	var parsedRules []Rule
	for lineIndex, rawLine := range lines {
		trimmedLine := strings.TrimSpace(rawLine)
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		isNegation := strings.HasPrefix(trimmedLine, negationPrefix)
		if isNegation {
			trimmedLine = strings.TrimPrefix(trimmedLine, negationPrefix)
			if trimmedLine == "" {
				continue
			}
		}
		parsedRules = append(parsedRules, Rule{
			Pattern:       trimmedLine,
			IsNegation:    isNegation,
			BaseDirectory: normalizedBase,
			Depth:         depth,
			SourceOrder:   lineIndex,
		})
	}
	return parsedRules
}

// Add appends rules to the set, preserving discovery order. Rules added later
// override earlier rules that match the same path.
func (ruleSet *RuleSet) Add(rules ...Rule) {
	for _, rule := range rules {
		rule.SourceOrder = ruleSet.nextOrder
		ruleSet.nextOrder++
		ruleSet.rules = append(ruleSet.rules, rule)
	}
}

// AddPatterns parses raw pattern strings discovered at the scan root and
// appends them to the set.
func (ruleSet *RuleSet) AddPatterns(patterns ...string) {
	ruleSet.Add(ParseLines(patterns, "")...)
}

// Clone returns an independent copy of the rule set. The walker clones the
// set before descending into a directory so that rules discovered in a
// subdirectory never leak into sibling subtrees.
func (ruleSet *RuleSet) Clone() *RuleSet {
	clonedRules := make([]Rule, len(ruleSet.rules))
	copy(clonedRules, ruleSet.rules)
	return &RuleSet{rules: clonedRules, nextOrder: ruleSet.nextOrder}
}

// Len reports the number of rules in the set.
func (ruleSet *RuleSet) Len() int {
	return len(ruleSet.rules)
}

// Matches reports whether relativePath is excluded by the rule set. The
// evaluation is a pure fold: the decision starts at "not excluded" and flips
// on every matching rule, so the last matching rule wins. Deeper rules were
// appended later and therefore override conflicting ancestor rules for paths
// under their directory.
func (ruleSet *RuleSet) Matches(relativePath string, isDirectory bool) bool {
	normalizedPath := normalizePath(relativePath)
	if normalizedPath == "" || normalizedPath == "." {
		return false
	}

	excluded := false
	for _, rule := range ruleSet.rules {
		if rule.matches(normalizedPath, isDirectory) {
			excluded = !rule.IsNegation
		}
	}
	return excluded
}

// Prunable reports whether the directory at relativePath can be skipped
// without visiting its contents. A directory is prunable when it is excluded
// and no negation rule could re-include a descendant.
func (ruleSet *RuleSet) Prunable(relativePath string) bool {
	normalizedPath := normalizePath(relativePath)
	if !ruleSet.Matches(normalizedPath, true) {
		return false
	}
	for _, rule := range ruleSet.rules {
		if rule.IsNegation && rule.mayApplyBelow(normalizedPath) {
			return false
		}
	}
	return true
}

// matches reports whether the rule applies to normalizedPath. The candidate
// path is already in forward-slash form.
func (rule Rule) matches(normalizedPath string, isDirectory bool) bool {
	scopedPath := normalizedPath
	if rule.BaseDirectory != "" {
		basePrefix := rule.BaseDirectory + pathSegmentSeparator
		if !strings.HasPrefix(normalizedPath, basePrefix) {
			return false
		}
		scopedPath = strings.TrimPrefix(normalizedPath, basePrefix)
	}

	pattern := rule.Pattern
	directoryOnly := strings.HasSuffix(pattern, pathSegmentSeparator)
	pattern = strings.TrimSuffix(pattern, pathSegmentSeparator)
	anchored := strings.HasPrefix(pattern, pathSegmentSeparator)
	pattern = strings.TrimPrefix(pattern, pathSegmentSeparator)
	if pattern == "" {
		return false
	}
	// A pattern containing an interior slash is implicitly anchored to the
	// directory its rule was discovered in, matching gitignore behavior.
	if strings.Contains(pattern, pathSegmentSeparator) {
		anchored = true
	}

	patternSegments := strings.Split(pattern, pathSegmentSeparator)
	pathSegments := strings.Split(scopedPath, pathSegmentSeparator)

	startOffsets := []int{0}
	if !anchored {
		startOffsets = make([]int, len(pathSegments))
		for offset := range pathSegments {
			startOffsets[offset] = offset
		}
	}

	for _, offset := range startOffsets {
		remaining := pathSegments[offset:]
		// Full match of the whole remaining path. A trailing slash restricts
		// the full match to directories.
		if segmentsMatch(patternSegments, remaining) && (!directoryOnly || isDirectory) {
			return true
		}
		// Prefix match: the pattern names an ancestor directory of the path,
		// which excludes everything beneath it. The matched element has
		// descendants, so it is a directory and satisfies a trailing slash.
		for prefixLength := 1; prefixLength < len(remaining); prefixLength++ {
			if segmentsMatch(patternSegments, remaining[:prefixLength]) {
				return true
			}
		}
	}
	return false
}

// mayApplyBelow conservatively reports whether the negation rule could match
// some path under directoryPath. Unanchored rules may match anywhere.
func (rule Rule) mayApplyBelow(directoryPath string) bool {
	pattern := strings.TrimSuffix(rule.Pattern, pathSegmentSeparator)
	anchored := strings.HasPrefix(pattern, pathSegmentSeparator) || strings.Contains(strings.TrimPrefix(pattern, pathSegmentSeparator), pathSegmentSeparator)
	if !anchored {
		return true
	}
	pattern = strings.TrimPrefix(pattern, pathSegmentSeparator)
	fullPattern := pattern
	if rule.BaseDirectory != "" {
		fullPattern = rule.BaseDirectory + pathSegmentSeparator + pattern
	}

	literalPrefix := literalLeadingSegments(fullPattern)
	if literalPrefix == "" {
		return true
	}
	directoryPrefix := directoryPath + pathSegmentSeparator
	return strings.HasPrefix(literalPrefix+pathSegmentSeparator, directoryPrefix) ||
		strings.HasPrefix(directoryPrefix, literalPrefix+pathSegmentSeparator)
}

// literalLeadingSegments returns the longest wildcard-free leading portion of
// a slash-separated pattern.
func literalLeadingSegments(pattern string) string {
	segments := strings.Split(pattern, pathSegmentSeparator)
	var literalSegments []string
	for _, segment := range segments {
		if strings.ContainsAny(segment, "*?[") {
			break
		}
		literalSegments = append(literalSegments, segment)
	}
	return strings.Join(literalSegments, pathSegmentSeparator)
}

// segmentsMatch reports whether patternSegments match pathSegments exactly.
// "**" matches zero or more whole segments; every other segment is evaluated
// with filepath.Match, degrading to a literal comparison when the segment is
// not a valid pattern.
func segmentsMatch(patternSegments, pathSegments []string) bool {
	if len(patternSegments) == 0 {
		return len(pathSegments) == 0
	}
	if patternSegments[0] == anySegmentsWildcard {
		for skipCount := 0; skipCount <= len(pathSegments); skipCount++ {
			if segmentsMatch(patternSegments[1:], pathSegments[skipCount:]) {
				return true
			}
		}
		return false
	}
	if len(pathSegments) == 0 {
		return false
	}
	if !segmentMatches(patternSegments[0], pathSegments[0]) {
		return false
	}
	return segmentsMatch(patternSegments[1:], pathSegments[1:])
}

// segmentMatches evaluates one pattern segment against one path segment.
func segmentMatches(patternSegment, pathSegment string) bool {
	matched, matchError := filepath.Match(patternSegment, pathSegment)
	if matchError != nil {
		return patternSegment == pathSegment
	}
	return matched
}

// normalizePath converts a path to slash-separated form and strips leading
// "./" markers.
func normalizePath(path string) string {
	normalized := strings.ReplaceAll(path, "\\", pathSegmentSeparator)
	normalized = strings.TrimPrefix(normalized, "./")
	return strings.Trim(normalized, pathSegmentSeparator)
}
