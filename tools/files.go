package tools

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File management with safety checks against accidental overwrites and
// deletes: WriteFile refuses to overwrite unless asked, DeleteFile
// requires an explicit confirm, ReadFile caps the bytes read.

const defaultMaxReadBytes = 1_000_000

// ListFiles returns the files under path, sorted. With recursive set it
// walks the whole tree; otherwise only direct children.
func ListFiles(path string, recursive bool) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", path)
	}

	var files []string
	if recursive {
		err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() {
				files = append(files, filepath.Join(path, e.Name()))
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// ReadFile reads at most maxBytes of a text file (1MB when maxBytes <= 0),
// replacing invalid UTF-8.
func ReadFile(path string, maxBytes int) (string, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("not a file: %s", path)
	}
	if maxBytes <= 0 {
		maxBytes = defaultMaxReadBytes
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if len(data) > maxBytes {
		data = data[:maxBytes]
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}

// WriteFile writes content to path and returns the path written. It
// refuses to overwrite an existing file unless allowOverwrite is set, and
// creates missing parent directories when createParents is set.
func WriteFile(path, content string, allowOverwrite, createParents bool) (string, error) {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return "", fmt.Errorf("target is a directory: %s", path)
		}
		if !allowOverwrite {
			return "", fmt.Errorf("refusing to overwrite existing file: %s", path)
		}
	} else if createParents {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", err
		}
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// DeleteFile removes a single file. Deletion requires confirm; directories
// are refused. Returns false when the file did not exist.
func DeleteFile(path string, confirm bool) (bool, error) {
	if !confirm {
		return false, fmt.Errorf("deletion requires confirm=true to proceed")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, fmt.Errorf("refusing to delete a directory: %s", path)
	}

	if err := os.Remove(path); err != nil {
		return false, err
	}
	return true, nil
}
