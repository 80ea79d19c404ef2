// Package issues scans a directory of numbered issue files and computes the
// next free zero-padded ID.
package issues

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/mcncl/jstool/internal/errors"
)

var idPrefix = regexp.MustCompile(`^(\d+)`)

// NextID returns the next available issue ID, zero-padded to 3 digits: one
// plus the highest digit prefix found among filenames in the open/ and
// closed/ subdirectories, or "001" when none carry one. Missing
// subdirectories are skipped; a missing issuesDir itself is an error.
func NextID(issuesDir string) (string, error) {
	if _, err := os.Stat(issuesDir); err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewIssuesError(
				fmt.Sprintf("directory not found: %s", issuesDir),
				errors.ErrDirNotFound)
		}
		return "", errors.NewIssuesError(
			fmt.Sprintf("failed to access directory: %s", issuesDir), err)
	}

	maxID := 0
	for _, subdir := range []string{"open", "closed"} {
		entries, err := os.ReadDir(filepath.Join(issuesDir, subdir))
		if err != nil {
			continue // subdirectory absent or unreadable
		}
		for _, entry := range entries {
			m := idPrefix.FindStringSubmatch(entry.Name())
			if m == nil {
				continue
			}
			id, err := strconv.Atoi(m[1])
			if err != nil {
				continue // digit run too long to fit an int
			}
			if id > maxID {
				maxID = id
			}
		}
	}
	return fmt.Sprintf("%03d", maxID+1), nil
}
