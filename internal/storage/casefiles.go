package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jwebster45206/case-engine/pkg/casefile"
)

// casefileDir provides filesystem-backed casefile access shared by the
// storage backends. Casefiles are static authored resources; only world
// snapshots go to the database.
type casefileDir struct {
	dataDir string
	logger  *slog.Logger
}

// ListCasefiles walks the casefiles directory and returns title -> filename.
// Unreadable or malformed files are skipped with a warning.
func (d *casefileDir) ListCasefiles(ctx context.Context) (map[string]string, error) {
	dir := filepath.Join(d.dataDir, "casefiles")
	casefiles := make(map[string]string)

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			d.logger.Warn("Failed to read casefile", "path", path, "error", err)
			return nil
		}

		var cf casefile.Casefile
		if err := json.Unmarshal(data, &cf); err != nil {
			d.logger.Warn("Failed to unmarshal casefile", "path", path, "error", err)
			return nil
		}

		casefiles[cf.Title] = filepath.Base(path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list casefiles: %w", err)
	}

	return casefiles, nil
}

// GetCasefile loads one casefile by filename.
func (d *casefileDir) GetCasefile(ctx context.Context, filename string) (*casefile.Casefile, error) {
	path := filepath.Join(d.dataDir, "casefiles", filepath.Base(filename))

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("casefile not found: %s", filename)
		}
		return nil, fmt.Errorf("failed to read casefile: %w", err)
	}

	var cf casefile.Casefile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal casefile: %w", err)
	}
	cf.FileName = filepath.Base(path)

	return &cf, nil
}
