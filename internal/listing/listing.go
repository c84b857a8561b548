package listing

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"battery-analyzer/internal/types"
)

// ExcelExtensions lists the spreadsheet extensions, matched case-insensitively
var ExcelExtensions = []string{".xlsx", ".xls"}

// IsExcelName reports whether a file name carries a spreadsheet extension
func IsExcelName(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range ExcelExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}

	return false
}

// FormatModTime renders a modification time in UTC RFC 3339; a zero time becomes the epoch.
func FormatModTime(t time.Time) string {
	if t.IsZero() {
		t = time.Unix(0, 0)
	}

	return t.UTC().Format(time.RFC3339)
}

// ListExcelFiles returns the spreadsheets directly inside path, in directory order.
// A metadata failure on any matching entry aborts the whole listing.
func ListExcelFiles(path string) ([]types.FileInfo, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}

		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}

	files := make([]types.FileInfo, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !IsExcelName(name) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// entry removed between enumeration and stat
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return nil, fmt.Errorf("%w: %s: %w", ErrMetadata, name, err)
		}

		files = append(files, types.FileInfo{
			Name:         name,
			Path:         filepath.Join(path, name),
			Size:         uint64(info.Size()),
			IsExcel:      true,
			LastModified: FormatModTime(info.ModTime()),
		})
	}

	return files, nil
}
