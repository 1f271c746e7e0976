package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "hotelcomp/internal/errors"
)

// Kind classifies catalog files by extension
type Kind string

const (
	KindWorkbook Kind = "xlsx"
	KindCSV      Kind = "csv"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Name    string    `json:"name"`
	Path    string    `json:"-"`
	Kind    Kind      `json:"kind"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modified"`
}

// KindOf returns the kind of a file name, or "" when it is neither a
// workbook nor a CSV file
func KindOf(name string) Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return KindWorkbook
	case ".csv":
		return KindCSV
	}
	return ""
}

// Catalog lists and resolves files in a single directory
type Catalog struct {
	dir string
}

// NewCatalog creates a catalog over dir
func NewCatalog(dir string) *Catalog {
	return &Catalog{dir: dir}
}

// Dir returns the catalog directory
func (c *Catalog) Dir() string {
	return c.dir
}

// List returns the catalog's workbooks and CSV files, newest first.
// Office lock files and subdirectories are skipped; a missing directory
// is an empty catalog.
func (c *Catalog) List() ([]FileInfo, error) {
	entries, err := os.ReadDir(c.dir)
	if errors.Is(err, os.ErrNotExist) {
		return []FileInfo{}, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read directory %s", c.dir), err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || isTempFile(name) {
			continue
		}
		kind := KindOf(name)
		if kind == "" {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Name:    name,
			Path:    filepath.Join(c.dir, name),
			Kind:    kind,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Name < files[j].Name
		}
		return files[i].ModTime.After(files[j].ModTime)
	})

	return files, nil
}

// Resolve looks up a file by its bare name. Names with path separators or
// parent references are rejected.
func (c *Catalog) Resolve(name string) (FileInfo, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == ".." {
		return FileInfo{}, apperrors.NewAppValidationError("invalid file name").WithContext("name", name)
	}
	kind := KindOf(name)
	if kind == "" {
		return FileInfo{}, apperrors.NewNotFoundError(name)
	}

	path := filepath.Join(c.dir, name)
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && info.IsDir()) {
		return FileInfo{}, apperrors.NewNotFoundError(name)
	}
	if err != nil {
		return FileInfo{}, apperrors.NewStorageError("failed to stat file", err).WithContext("name", name)
	}

	return FileInfo{
		Name:    name,
		Path:    path,
		Kind:    kind,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Prune removes all but the newest keep files and returns the removed
// names. keep <= 0 leaves the catalog untouched.
func (c *Catalog) Prune(keep int) ([]string, error) {
	if keep <= 0 {
		return nil, nil
	}

	files, err := c.List()
	if err != nil {
		return nil, err
	}
	if len(files) <= keep {
		return nil, nil
	}

	var removed []string
	for _, f := range files[keep:] {
		if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, apperrors.NewStorageError("failed to remove file", err).WithContext("name", f.Name)
		}
		removed = append(removed, f.Name)
	}
	return removed, nil
}

// GetLatestFile returns the most recently modified file
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, f := range files[1:] {
		if f.ModTime.After(latest.ModTime) {
			latest = f
		}
	}
	return latest, true
}

// isTempFile reports Office lock files such as ~$report.xlsx
func isTempFile(name string) bool {
	return strings.HasPrefix(name, "~$") || strings.HasPrefix(name, ".")
}
