// Package content finds the class names used by a project's source files.
package content

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"bennypowers.dev/mincss/internal/log"
	"bennypowers.dev/mincss/internal/parser"
	"bennypowers.dev/mincss/internal/parser/classname"
)

// DefaultPatterns are the content globs used when none are configured
var DefaultPatterns = []string{
	"**/*.html",
	"**/*.{js,jsx,ts,tsx,mjs}",
	"**/*.{vue,svelte,astro}",
}

// skipDirs are never searched
var skipDirs = []string{"node_modules", "dist", "build", "vendor"}

// Candidate is a class name found in a content file
type Candidate struct {
	ClassName string
	File      string
	// Line and Column are zero-based and locate the string the class was found in
	Line   uint
	Column uint
}

// Result holds the candidates of every scanned file, file by file
type Result struct {
	Files      []string
	Candidates []Candidate
}

// ClassNames returns the distinct class names in order of first appearance
func (r *Result) ClassNames() []string {
	seen := make(map[string]bool, len(r.Candidates))
	var names []string
	for _, c := range r.Candidates {
		if !seen[c.ClassName] {
			seen[c.ClassName] = true
			names = append(names, c.ClassName)
		}
	}
	return names
}

// shouldSkipDirectory reports hidden directories and common build/dependency directories
func shouldSkipDirectory(d fs.DirEntry) bool {
	if !d.IsDir() {
		return false
	}
	if strings.HasPrefix(d.Name(), ".") {
		return true
	}
	return slices.Contains(skipDirs, d.Name())
}

// matchesAnyPattern checks if a slash-separated relative path matches any of the glob patterns
func matchesAnyPattern(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, relPath)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// Discover returns the files below root matching any pattern, in walk order.
// Absolute patterns and patterns with invalid syntax are an error.
func Discover(root string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid content pattern %q", pattern)
		}
		if filepath.IsAbs(pattern) {
			return nil, fmt.Errorf("content pattern %q must be relative to %s", pattern, root)
		}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debug("Skipping %s: %v", path, err)
			return nil
		}
		if path != root && shouldSkipDirectory(d) {
			return filepath.SkipDir
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if matchesAnyPattern(filepath.ToSlash(rel), patterns) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}

// Scan discovers content files and extracts their class name candidates.
// Files are read and parsed concurrently; the result keeps discovery order.
func Scan(ctx context.Context, root string, patterns []string) (*Result, error) {
	files, err := Discover(root, patterns)
	if err != nil {
		return nil, err
	}
	log.Info("Scanning %d content files", len(files))

	perFile := make([][]Candidate, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			perFile[i] = Extract(file, string(data))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Files: files}
	for _, cs := range perFile {
		result.Candidates = append(result.Candidates, cs...)
	}
	return result, nil
}

// Extract returns the class name candidates of one file's content. Files
// the parsers understand contribute their class-bearing strings. Other
// files are split into words and only words that parse as class names are
// kept.
func Extract(file, content string) []Candidate {
	lang := parser.LanguageForPath(file)
	var out []Candidate
	for _, s := range parser.ClassStringsFromDocument(content, lang) {
		for _, name := range Split(s.Value) {
			if lang == "" && !plausible(name) {
				continue
			}
			out = append(out, Candidate{
				ClassName: name,
				File:      file,
				Line:      s.Line,
				Column:    s.Column,
			})
		}
	}
	return out
}

// Split breaks a class list on whitespace and quote characters. Brackets
// and parentheses protect their contents, so "grid-cols-[1fr_auto]" and
// "bg-(--brand)" stay whole.
func Split(s string) []string {
	var out []string
	depth := 0
	start := -1
	for i, r := range s {
		switch {
		case r == '[' || r == '(':
			depth++
		case (r == ']' || r == ')') && depth > 0:
			depth--
		case depth == 0 && (unicode.IsSpace(r) || r == '"' || r == '\'' || r == '`'):
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}

// plausible reports whether a word from unstructured text looks like a class name
func plausible(word string) bool {
	if strings.ContainsAny(word, "<>{};=") && !strings.ContainsAny(word, "[(") {
		return false
	}
	_, err := classname.Parse(word)
	return err == nil
}
