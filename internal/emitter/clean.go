package emitter

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var (
	migrationFile   = regexp.MustCompile(`^\d{4}_\d{2}_\d{2}_\d{6}_(create|add_foreign_keys_to)_\w+_table\.(php|sql)$`)
	seedFilePattern = regexp.MustCompile(`^\w+` + regexp.QuoteMeta(seedSuffix) + `$`)
)

// Clean removes generated migration and seed files from dir and returns the
// removed names. Other files are left alone; a missing dir is not an error.
func Clean(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var removed []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !migrationFile.MatchString(name) && !seedFilePattern.MatchString(name) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return removed, fmt.Errorf("remove %s: %w", name, err)
		}
		removed = append(removed, name)
	}
	return removed, nil
}
