package logline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ReadFile loads a whole log file and returns its lines trimmed of
// surrounding whitespace. Line i of the result is file line i+1.
func ReadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return SplitLines(data), nil
}

// SplitLines splits raw file content into trimmed lines. A final newline
// does not start an extra empty line. Lines have no length limit.
func SplitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}

// Discover resolves root to the list of log files to process. A file is
// returned as-is when its extension matches ext (case-insensitive); a
// directory is walked recursively. Results are in lexical order.
func Discover(root, ext string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if !HasExt(root, ext) {
			return nil, fmt.Errorf("%w: %s (want %s)", ErrNotLogFile, root, ext)
		}
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && HasExt(path, ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// HasExt reports whether path ends in ext, ignoring case.
func HasExt(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}
