// Package regexsearch centralizes the "search" (unanchored substring)
// regex semantics used by both surface languages that expose ~ and !~
// operators: the adjuster's when-expression language (spec §4.1) and the
// hardware-requirement string leaves (spec §4.4). Spec §9 explicitly calls
// for "regex operators in two layers" to be centralized in one helper.
package regexsearch

import "regexp"

// Match reports whether pattern is found anywhere in value (search
// semantics, not full-match). Leading/trailing whitespace in pattern is
// stripped before compilation, per spec §4.1 and §4.4.
func Match(pattern, value string) (bool, error) {
	re, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(value), nil
}

// Compile trims surrounding whitespace from pattern and compiles it.
func Compile(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(trim(pattern))
}

func trim(s string) string {
	start, end := 0, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
