package loader

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hassan/mana/internal/diag"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// splitModulePath splits a dotted module path on "::" and validates every
// segment is a legal identifier (spec.md §4.4.2, §6).
func splitModulePath(path string) ([]string, *diag.Error) {
	segments := strings.Split(path, "::")
	for _, seg := range segments {
		if !identPattern.MatchString(seg) {
			return nil, diag.ModuleNotFound(path)
		}
	}
	return segments, nil
}

// candidateForms returns the two file forms a module's segments can resolve
// to: the leaf file and the directory-with-entry-file form (spec.md §4.4.2).
func candidateForms(segments []string) (leaf, dirForm string) {
	relative := filepath.Join(segments...)
	return relative + ".mana", filepath.Join(relative, "mod.mana")
}

// candidateRoots enumerates search roots in priority order (spec.md
// §4.4.2). The directory of fromFile, when given, is always prepended last
// so sibling imports beat every configured root (step 5 of §4.4.2).
func (l *Loader) candidateRoots(segments []string, fromFile string) []string {
	var roots []string

	if len(segments) > 0 && segments[0] == "std" && l.StdLibRoot != "" {
		roots = append(roots, l.StdLibRoot)
	}
	if l.ProjectRoot != "" {
		roots = append(roots, filepath.Join(l.ProjectRoot, "src"), l.ProjectRoot)
	}
	roots = append(roots, l.SearchPaths...)
	roots = append(roots, ".")

	if fromFile != "" {
		roots = append([]string{filepath.Dir(fromFile)}, roots...)
	}
	return roots
}

// existingAbs reports whether path names an existing regular file,
// returning its canonical absolute form.
func existingAbs(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	return abs, true
}

// resolveModulePath finds the absolute file a dotted module path resolves
// to, probing every candidate in the priority order of §4.4.2.
func (l *Loader) resolveModulePath(path, fromFile string) (string, *diag.Error) {
	segments, err := splitModulePath(path)
	if err != nil {
		return "", err
	}
	leaf, dirForm := candidateForms(segments)

	for _, root := range l.candidateRoots(segments, fromFile) {
		for _, candidate := range [...]string{leaf, dirForm} {
			if abs, ok := existingAbs(filepath.Join(root, candidate)); ok {
				return abs, nil
			}
		}
	}
	return "", diag.ModuleNotFound(path)
}

// resolveFileImport resolves a quoted file-import path (spec.md §4.4.3).
// Absolute paths are used verbatim; relative paths are tried against the
// importing file's directory, then the project root, then the working
// directory, in that order.
func (l *Loader) resolveFileImport(rawPath, fromFile string) (string, *diag.Error) {
	cleaned := filepath.FromSlash(rawPath)

	if filepath.IsAbs(cleaned) {
		if abs, ok := existingAbs(cleaned); ok {
			return abs, nil
		}
		return "", diag.ModuleNotFound(rawPath)
	}

	var roots []string
	if fromFile != "" {
		roots = append(roots, filepath.Dir(fromFile))
	}
	if l.ProjectRoot != "" {
		roots = append(roots, l.ProjectRoot)
	}
	roots = append(roots, ".")

	for _, root := range roots {
		if abs, ok := existingAbs(filepath.Join(root, cleaned)); ok {
			return abs, nil
		}
	}
	return "", diag.ModuleNotFound(rawPath)
}
