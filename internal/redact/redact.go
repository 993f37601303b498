// Package redact suppresses sensitive files and scrubs secret-shaped values
// from text content. Redaction is best-effort and never fails: a malformed
// rule is dropped at construction time and the worst outcome is
// under-redaction, never a crash.
package redact

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/scharc/snaprepo/internal/config"
)

// Placeholder replaces every redacted secret value. None of the content rules
// can match it, which makes redaction idempotent and order-independent.
const Placeholder = "[REDACTED]"

// TemplateMarker is prepended to template files that would otherwise be
// suppressed by a whole-file rule.
const TemplateMarker = "# template — placeholders only\n"

// WholeFileRule suppresses a file's entire content based on its path.
type WholeFileRule struct {
	// Pattern is an exact relative path, a directory prefix ending in "/", or
	// a glob evaluated against the path and its base name.
	Pattern string
	// Reason is the human-readable marker shown in place of the content.
	Reason string
}

// ContentRule rewrites secret-shaped matches inside text content.
type ContentRule struct {
	// Name identifies the rule in logs and tests.
	Name string
	// Expression is the uncompiled pattern; invalid expressions are skipped.
	Expression string
	// Replacement may reference capture groups to preserve line structure.
	Replacement string
}

// Outcome is the result of redacting one file.
type Outcome struct {
	Content      string
	Applied      bool
	OmittedWhole bool
	Reason       string
}

type compiledContentRule struct {
	name        string
	expression  *regexp.Regexp
	replacement string
}

// Engine applies a fixed rule set resolved once at startup.
type Engine struct {
	wholeFileRules []WholeFileRule
	contentRules   []compiledContentRule
}

// NewEngine constructs an Engine with the built-in rule tables.
func NewEngine() *Engine {
	return NewEngineWithRules(DefaultWholeFileRules(), DefaultContentRules())
}

// NewEngineWithRules constructs an Engine from explicit rule tables. Content
// rules whose expression does not compile are skipped; every other rule stays
// effective.
func NewEngineWithRules(wholeFileRules []WholeFileRule, contentRules []ContentRule) *Engine {
	engine := &Engine{wholeFileRules: wholeFileRules}
	for _, rule := range contentRules {
		compiledExpression, compileError := regexp.Compile(rule.Expression)
		if compileError != nil {
			continue
		}
		engine.contentRules = append(engine.contentRules, compiledContentRule{
			name:        rule.Name,
			expression:  compiledExpression,
			replacement: rule.Replacement,
		})
	}
	return engine
}

// Redact applies both redaction layers to the content of the file at
// relativePath. Template files are exempt from whole-file suppression but
// carry a visible marker whenever the file they stand in for would have been
// suppressed, and still go through content redaction.
func (engine *Engine) Redact(relativePath string, isTemplate bool, content string) Outcome {
	reason, suppressed := engine.SuppressionReason(relativePath)
	if isTemplate {
		if !suppressed {
			strippedPath := filepath.Join(filepath.Dir(relativePath), config.StripTemplateSuffix(filepath.Base(relativePath)))
			_, suppressed = engine.SuppressionReason(strippedPath)
		}
		scrubbedContent, applied := engine.RedactContent(content)
		if suppressed {
			return Outcome{Content: TemplateMarker + scrubbedContent, Applied: true}
		}
		return Outcome{Content: scrubbedContent, Applied: applied}
	}
	if suppressed {
		return Outcome{Applied: true, OmittedWhole: true, Reason: reason}
	}
	scrubbedContent, applied := engine.RedactContent(content)
	return Outcome{Content: scrubbedContent, Applied: applied}
}

// SuppressionReason reports whether the file at relativePath matches a
// whole-file suppression rule and returns the rule's reason.
func (engine *Engine) SuppressionReason(relativePath string) (string, bool) {
	normalizedPath := filepath.ToSlash(relativePath)
	baseName := filepath.Base(normalizedPath)
	for _, rule := range engine.wholeFileRules {
		if wholeFileRuleMatches(rule.Pattern, normalizedPath, baseName) {
			return rule.Reason, true
		}
	}
	return "", false
}

// RedactContent scrubs secret-shaped values from content and reports whether
// any rule fired. Running it on already-redacted content is a no-op.
func (engine *Engine) RedactContent(content string) (string, bool) {
	scrubbed := content
	for _, rule := range engine.contentRules {
		scrubbed = rule.expression.ReplaceAllString(scrubbed, rule.replacement)
	}
	return scrubbed, scrubbed != content
}

// wholeFileRuleMatches evaluates one suppression pattern. Directory prefixes
// end in "/" and cover every descendant; other patterns are globs tried
// against the full relative path and the base name. An invalid glob degrades
// to literal comparison.
func wholeFileRuleMatches(pattern, normalizedPath, baseName string) bool {
	if strings.HasSuffix(pattern, "/") {
		trimmedPattern := strings.TrimSuffix(pattern, "/")
		if normalizedPath == trimmedPattern || strings.HasPrefix(normalizedPath, trimmedPattern+"/") {
			return true
		}
		return strings.Contains(normalizedPath, "/"+trimmedPattern+"/")
	}

	candidatePattern := strings.TrimPrefix(pattern, "**/")
	for _, candidate := range []string{normalizedPath, baseName} {
		matched, matchError := filepath.Match(candidatePattern, candidate)
		if matchError != nil {
			if candidatePattern == candidate {
				return true
			}
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
