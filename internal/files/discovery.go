// Package files discovers workbook exports on disk for batch-style
// CLI processing.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo describes one discovered workbook file.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// workbookExtensions are the file types the pipeline can ingest.
var workbookExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
}

// FindWorkbooks lists the workbook files in dir, newest first. Excel
// lock files (~$ prefix) are skipped.
func FindWorkbooks(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "~$") {
			continue
		}
		if !workbookExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(dir, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}

// LatestWorkbook returns the most recently modified workbook in dir.
func LatestWorkbook(dir string) (FileInfo, error) {
	files, err := FindWorkbooks(dir)
	if err != nil {
		return FileInfo{}, err
	}
	if len(files) == 0 {
		return FileInfo{}, fmt.Errorf("no workbook files found in %s", dir)
	}
	return files[0], nil
}
