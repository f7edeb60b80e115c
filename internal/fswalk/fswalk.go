// Package fswalk resolves a directory-plus-wildcard file spec into a list
// of candidate paths, recursing into subdirectories on request. The
// wildcard-to-regex translation matches DOS glob semantics: '*' -> any run
// of characters, '?' -> any single character, '.' escaped, everything else
// literal, anchored start-to-end.
package fswalk

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ToRegex translates a DOS-style wildcard pattern (e.g. "*.emobs") into an
// anchored, case-sensitive regular expression matching a bare file name.
func ToRegex(wildcard string) *regexp.Regexp {
	var b strings.Builder
	b.WriteByte('^')
	for _, ch := range wildcard {
		switch ch {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteByte('.')
		case '.':
			b.WriteString(`\.`)
		default:
			b.WriteString(regexp.QuoteMeta(string(ch)))
		}
	}
	b.WriteByte('$')
	return regexp.MustCompile(b.String())
}

// Find returns every file under dir (dir itself if recurse is false,
// dir and all its subdirectories if recurse is true) whose base name
// matches pattern. dir == "" searches the current working directory.
// Results are returned in the order os.ReadDir/filepath.WalkDir yields
// them, which is lexical per directory.
func Find(dir, pattern string, recurse bool) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	re := ToRegex(pattern)

	var matches []string
	if !recurse {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if re.MatchString(e.Name()) {
				matches = append(matches, filepath.Join(dir, e.Name()))
			}
		}
		return matches, nil
	}

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if re.MatchString(d.Name()) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}
