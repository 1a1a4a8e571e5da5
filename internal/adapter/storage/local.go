package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/semmidev/argos/internal/domain"
)

const (
	dateLayout     = "2006-01-02"
	hourLayout     = "15"
	backupIDLayout = "2006-01-02_15-04"
)

// LocalStorage owns the dated backup tree:
// <root>/<YYYY-MM-DD>/<HH>/backup_<YYYY-MM-DD_HH-MM>.gz
type LocalStorage struct {
	root string
}

func NewLocal(root string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}
	return &LocalStorage{root: root}, nil
}

// PlanRun computes the run directory and archive path for the given time and
// creates the directory. Creation is idempotent.
func (l *LocalStorage) PlanRun(now time.Time, trigger domain.Trigger) (domain.Run, error) {
	dir := filepath.Join(l.root, now.Format(dateLayout), now.Format(hourLayout))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return domain.Run{}, fmt.Errorf("failed to create run directory: %w", err)
	}

	backupID := "backup_" + now.Format(backupIDLayout)

	return domain.Run{
		Trigger:     trigger,
		StartedAt:   now,
		Dir:         dir,
		ArchivePath: filepath.Join(dir, backupID+".gz"),
		BackupID:    backupID,
	}, nil
}

// Prune removes each date-folder under the root whose last-modified time is
// older than retentionDays before now. Per-folder errors are collected but
// never abort the scan.
func (l *LocalStorage) Prune(retentionDays int) (int, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return 0, fmt.Errorf("failed to read backup directory: %w", err)
	}

	cutoff := time.Now().Add(-time.Duration(retentionDays) * 24 * time.Hour)

	deleted := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.RemoveAll(filepath.Join(l.root, entry.Name())); err != nil {
				continue
			}
			deleted++
		}
	}

	return deleted, nil
}

func (l *LocalStorage) Root() string {
	return l.root
}
