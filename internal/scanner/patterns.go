package scanner

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// PatternMatcher handles pattern matching for file filtering.
type PatternMatcher struct{}

// NewPatternMatcher creates a new pattern matcher.
func NewPatternMatcher() *PatternMatcher {
	return &PatternMatcher{}
}

// IsExcluded reports whether relPath matches any of the exclude patterns.
func (pm *PatternMatcher) IsExcluded(relPath string, excludePatterns []string) bool {
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range excludePatterns {
		if pm.matchesPattern(relPath, pattern) {
			return true
		}
	}

	return false
}

// matchesPattern checks if a slash-separated path matches a glob pattern.
// Patterns ending in "/" match a whole directory. Patterns without a slash
// also match the base name at any depth, the way .gitignore does. "**" is
// a recursive wildcard.
func (pm *PatternMatcher) matchesPattern(relPath, pattern string) bool {
	pattern = filepath.ToSlash(pattern)

	if strings.HasSuffix(pattern, "/") {
		dir := strings.TrimSuffix(pattern, "/")
		if strings.HasPrefix(relPath+"/", dir+"/") {
			return true
		}
		return !strings.Contains(dir, "/") && strings.Contains("/"+relPath, "/"+dir+"/")
	}

	if strings.Contains(pattern, "**") {
		return pm.matchesGlobPattern(relPath, pattern)
	}

	if match, err := path.Match(pattern, relPath); err == nil && match {
		return true
	}

	if !strings.Contains(pattern, "/") {
		match, err := path.Match(pattern, path.Base(relPath))
		return err == nil && match
	}

	return false
}

// matchesGlobPattern handles patterns with a single ** (recursive wildcard).
func (pm *PatternMatcher) matchesGlobPattern(relPath, pattern string) bool {
	parts := strings.Split(pattern, "**")
	if len(parts) != 2 {
		return false
	}

	prefix, suffix := parts[0], parts[1]
	if !strings.HasPrefix(relPath, prefix) {
		return false
	}
	if suffix == "" {
		return true
	}

	rest := strings.TrimPrefix(relPath, prefix)
	suffix = strings.TrimPrefix(suffix, "/")

	// The suffix may match any trailing run of path segments.
	segments := strings.Split(rest, "/")
	for i := range segments {
		if match, err := path.Match(suffix, strings.Join(segments[i:], "/")); err == nil && match {
			return true
		}
	}
	return false
}

// ValidatePatterns validates that the given patterns are syntactically correct.
func (pm *PatternMatcher) ValidatePatterns(patterns []string) []error {
	var errs []error

	for i, pattern := range patterns {
		if pattern == "" {
			errs = append(errs, &PatternError{Pattern: pattern, Index: i, Err: fmt.Errorf("empty pattern")})
			continue
		}
		if strings.Count(pattern, "**") > 1 {
			errs = append(errs, &PatternError{Pattern: pattern, Index: i, Err: fmt.Errorf("only one ** is supported")})
			continue
		}

		if _, err := path.Match(strings.ReplaceAll(pattern, "**", "*"), "dummy"); err != nil {
			errs = append(errs, &PatternError{
				Pattern: pattern,
				Index:   i,
				Err:     err,
			})
		}
	}

	return errs
}

// PatternError represents an error with a pattern.
type PatternError struct {
	Pattern string
	Index   int
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern at index %d '%s': %v", e.Index, e.Pattern, e.Err)
}

// Unwrap returns the underlying error.
func (e *PatternError) Unwrap() error {
	return e.Err
}
