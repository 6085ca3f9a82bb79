package draft

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scan walks dir for markdown notes and returns their paths in lexical
// order. Hidden and vendored directories are skipped. A path that is a
// file is returned as is.
func Scan(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{dir}, nil
	}

	var paths []string
	if err := walkDrafts(dir, &paths); err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func walkDrafts(dir string, paths *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		absPath := filepath.Join(dir, name)

		if entry.IsDir() {
			if shouldSkipDir(name) {
				continue
			}
			if err := walkDrafts(absPath, paths); err != nil {
				return err
			}
		} else if isDraftFile(name) {
			*paths = append(*paths, absPath)
		}
	}
	return nil
}

func isDraftFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".md") && !strings.HasPrefix(name, ".")
}

// shouldSkipDir returns true for directories that should be skipped during scanning
func shouldSkipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "node_modules", "vendor", "__pycache__", "target", "build", "dist":
		return true
	}
	return false
}
