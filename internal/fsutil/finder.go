// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindTreeFiles recursively collects every regular file under the given
// trees (paths relative to root), returning slash-separated paths relative
// to root in sorted order. Dot-prefixed files and directories are skipped,
// as are trees that do not exist.
func FindTreeFiles(root string, trees []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})

	for _, tree := range trees {
		treePath := filepath.Join(root, tree)
		info, err := os.Stat(treePath)
		if err != nil {
			if os.IsNotExist(err) {
				continue // A configured tree that doesn't exist simply has no units.
			}
			return nil, err
		}
		if !info.IsDir() {
			continue
		}

		err = filepath.WalkDir(treePath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			if _, ok := seen[rel]; !ok {
				seen[rel] = struct{}{}
				files = append(files, rel)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
