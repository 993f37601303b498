package ignore

import "testing"

func newRuleSetFromPatterns(patterns ...string) *RuleSet {
	ruleSet := NewRuleSet()
	ruleSet.AddPatterns(patterns...)
	return ruleSet
}

func TestMatchesBasicPatterns(t *testing.T) {
	testCases := []struct {
		name        string
		patterns    []string
		path        string
		isDirectory bool
		expected    bool
	}{
		{name: "glob within segment", patterns: []string{"*.log"}, path: "server.log", expected: true},
		{name: "unanchored glob matches basename at depth", patterns: []string{"*.log"}, path: "logs/server.log", expected: true},
		{name: "unanchored name matches at depth", patterns: []string{"node_modules/"}, path: "web/node_modules/lib/index.js", expected: true},
		{name: "anchored pattern only at root", patterns: []string{"/build"}, path: "src/build", expected: false},
		{name: "anchored pattern at root", patterns: []string{"/build"}, path: "build", expected: true},
		{name: "directory pattern excludes descendants", patterns: []string{"dist/"}, path: "dist/app.js", expected: true},
		{name: "directory pattern spares plain file", patterns: []string{"dist/"}, path: "dist", isDirectory: false, expected: false},
		{name: "directory pattern matches directory", patterns: []string{"dist/"}, path: "dist", isDirectory: true, expected: true},
		{name: "double star crosses segments", patterns: []string{"**/generated/*.go"}, path: "a/b/generated/models.go", expected: true},
		{name: "double star at end", patterns: []string{"vendor/**"}, path: "vendor/github.com/pkg/errors/errors.go", expected: true},
		{name: "unparseable pattern is literal", patterns: []string{"[oops"}, path: "[oops", expected: true},
		{name: "unparseable pattern no false positive", patterns: []string{"[oops"}, path: "oops", expected: false},
		{name: "no rules", patterns: nil, path: "main.go", expected: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			ruleSet := newRuleSetFromPatterns(testCase.patterns...)
			if actual := ruleSet.Matches(testCase.path, testCase.isDirectory); actual != testCase.expected {
				t.Fatalf("Matches(%q) = %v, expected %v", testCase.path, actual, testCase.expected)
			}
		})
	}
}

func TestLastMatchWinsWithNegation(t *testing.T) {
	ruleSet := newRuleSetFromPatterns("docs/", "!docs/keep.md")
	if !ruleSet.Matches("docs/readme.md", false) {
		t.Fatalf("expected docs/readme.md to be excluded")
	}
	if ruleSet.Matches("docs/keep.md", false) {
		t.Fatalf("expected docs/keep.md to be re-included by negation")
	}
}

func TestNegationOrderMatters(t *testing.T) {
	ruleSet := newRuleSetFromPatterns("!special.log", "*.log")
	if !ruleSet.Matches("special.log", false) {
		t.Fatalf("later exclusion should override earlier negation")
	}

	reversed := newRuleSetFromPatterns("*.log", "!special.log")
	if reversed.Matches("special.log", false) {
		t.Fatalf("later negation should override earlier exclusion")
	}
}

func TestDeeperRulesOverrideAncestors(t *testing.T) {
	ruleSet := NewRuleSet()
	ruleSet.Add(ParseLines([]string{"*.txt"}, "")...)
	ruleSet.Add(ParseLines([]string{"!notes.txt"}, "sub")...)

	if !ruleSet.Matches("notes.txt", false) {
		t.Fatalf("root-level notes.txt should stay excluded")
	}
	if ruleSet.Matches("sub/notes.txt", false) {
		t.Fatalf("deeper negation should re-include sub/notes.txt")
	}
	if !ruleSet.Matches("sub/other.txt", false) {
		t.Fatalf("sub/other.txt should remain excluded")
	}
}

func TestScopedRulesDoNotLeakOutsideBase(t *testing.T) {
	ruleSet := NewRuleSet()
	ruleSet.Add(ParseLines([]string{"secret/"}, "deep")...)

	if ruleSet.Matches("secret/file.txt", false) {
		t.Fatalf("rule scoped to deep/ must not match at the root")
	}
	if !ruleSet.Matches("deep/secret/file.txt", false) {
		t.Fatalf("rule scoped to deep/ should match below it")
	}
}

func TestPrunable(t *testing.T) {
	ruleSet := newRuleSetFromPatterns("vendor/")
	if !ruleSet.Prunable("vendor") {
		t.Fatalf("excluded directory without negations should be prunable")
	}

	withNegation := newRuleSetFromPatterns("vendor/", "!vendor/keep.go")
	if withNegation.Prunable("vendor") {
		t.Fatalf("directory with a negation beneath it must not be pruned")
	}

	unrelatedNegation := newRuleSetFromPatterns("vendor/", "!docs/keep.md")
	if !unrelatedNegation.Prunable("vendor") {
		t.Fatalf("negation anchored elsewhere should not block pruning")
	}
}

func TestParseLinesSkipsCommentsAndBlanks(t *testing.T) {
	parsedRules := ParseLines([]string{"", "# comment", "  ", "*.tmp", "!keep.tmp"}, "")
	if len(parsedRules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(parsedRules))
	}
	if parsedRules[0].Pattern != "*.tmp" || parsedRules[0].IsNegation {
		t.Fatalf("unexpected first rule: %+v", parsedRules[0])
	}
	if parsedRules[1].Pattern != "keep.tmp" || !parsedRules[1].IsNegation {
		t.Fatalf("unexpected second rule: %+v", parsedRules[1])
	}
}

func TestCloneIsIndependent(t *testing.T) {
	original := newRuleSetFromPatterns("*.log")
	cloned := original.Clone()
	cloned.AddPatterns("*.tmp")

	if original.Matches("scratch.tmp", false) {
		t.Fatalf("adding to a clone must not affect the original")
	}
	if !cloned.Matches("scratch.tmp", false) {
		t.Fatalf("clone should contain the added pattern")
	}
}
