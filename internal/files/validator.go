package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	apperrors "hotelcomp/internal/errors"
)

// ValidateDatasetFile checks that path is a readable, non-empty workbook
// or CSV file
func ValidateDatasetFile(path string) error {
	if KindOf(path) == "" {
		return apperrors.NewParsingError(
			fmt.Sprintf("unsupported file type %q, expected .xlsx or .csv", filepath.Ext(path)), nil).
			WithContext("file", path)
	}
	if isTempFile(filepath.Base(path)) {
		return apperrors.NewAppValidationError("temporary or hidden files cannot be loaded").WithContext("file", path)
	}

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return apperrors.NewNotFoundError(path)
	}
	if err != nil {
		return apperrors.NewStorageError("failed to stat file", err).WithContext("file", path)
	}
	if info.IsDir() {
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is a directory, not a file", path))
	}
	if info.Size() == 0 {
		return apperrors.NewParsingError("dataset file is empty", nil).WithContext("file", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return apperrors.NewStorageError("file is not readable", err).WithContext("file", path)
	}
	return f.Close()
}
