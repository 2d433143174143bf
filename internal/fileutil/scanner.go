package fileutil

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// WalkOptions configures which files a walk yields
type WalkOptions struct {
	// Extensions is a list of file extensions to include (e.g., ".adoc", ".md")
	// An empty list yields every regular file
	Extensions []string
	// ExcludeDirs is a list of directory names to skip (e.g., ".git")
	ExcludeDirs []string
}

// Walk returns the files under root that match opts.
// Paths are root joined with the path relative to root.
// Each range over the returned sequence performs a fresh walk.
func Walk(root string, opts WalkOptions) iter.Seq2[string, error] {
	extMap := make(map[string]bool)
	for _, ext := range opts.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extMap[strings.ToLower(ext)] = true
	}

	excludeMap := make(map[string]bool)
	for _, dir := range opts.ExcludeDirs {
		excludeMap[dir] = true
	}

	return func(yield func(string, error) bool) {
		info, err := os.Stat(root)
		if err != nil {
			yield("", fmt.Errorf("failed to access directory: %w", err))
			return
		}
		if !info.IsDir() {
			yield("", fmt.Errorf("path is not a directory: %s", root))
			return
		}

		w := walker{extMap: extMap, excludeMap: excludeMap, yield: yield}
		w.walkDir(root)
	}
}

type walker struct {
	extMap     map[string]bool
	excludeMap map[string]bool
	yield      func(string, error) bool
}

// walkDir yields the matching files of dir, then recurses into its
// subdirectories. It returns false once the consumer stops or an error
// has been yielded.
func (w *walker) walkDir(dir string) bool {
	// os.ReadDir returns entries sorted by filename
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.yield("", fmt.Errorf("error accessing %s: %w", dir, err))
		return false
	}

	var subdirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			if !w.excludeMap[entry.Name()] {
				subdirs = append(subdirs, filepath.Join(dir, entry.Name()))
			}
			continue
		}
		if !entry.Type().IsRegular() && entry.Type()&os.ModeSymlink == 0 {
			continue
		}
		if !w.matches(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if entry.Type()&os.ModeSymlink != 0 && !isFileLink(path) {
			continue
		}
		if !w.yield(path, nil) {
			return false
		}
	}

	for _, sub := range subdirs {
		if !w.walkDir(sub) {
			return false
		}
	}
	return true
}

// isFileLink reports whether the symlink at path resolves to a regular file.
// Links to directories are not followed and dangling links are skipped.
func isFileLink(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (w *walker) matches(filename string) bool {
	if len(w.extMap) == 0 {
		return true
	}
	return w.extMap[strings.ToLower(filepath.Ext(filename))]
}
