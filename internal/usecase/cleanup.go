package usecase

import (
	"context"
	"sync"
	"time"
)

// Cleanup prunes expired local date-folders and sweeps old archives from the
// remote targets. Errors are logged and swallowed; cleanup never escalates.
type Cleanup struct {
	pruner        LocalPruner
	uploadTargets []UploadTarget
	logger        Logger
	retentionDays int
}

func NewCleanup(
	pruner LocalPruner,
	uploadTargets []UploadTarget,
	logger Logger,
	retentionDays int,
) *Cleanup {
	return &Cleanup{
		pruner:        pruner,
		uploadTargets: uploadTargets,
		logger:        logger,
		retentionDays: retentionDays,
	}
}

func (uc *Cleanup) Execute(ctx context.Context) error {
	uc.logger.Infof("Starting cleanup, retention: %d days", uc.retentionDays)

	deleted, err := uc.pruner.Prune(uc.retentionDays)
	if err != nil {
		uc.logger.Warnf("Local prune failed: %v", err)
	} else {
		uc.logger.Infof("Deleted %d expired local backup folder(s)", deleted)
	}

	if len(uc.uploadTargets) > 0 {
		cutoff := time.Now().AddDate(0, 0, -uc.retentionDays)
		uc.cleanupTargets(ctx, cutoff)
	}

	uc.logger.Infof("Cleanup completed")
	return nil
}

func (uc *Cleanup) cleanupTargets(ctx context.Context, cutoff time.Time) {
	var wg sync.WaitGroup

	for _, target := range uc.uploadTargets {
		wg.Add(1)
		go func(t UploadTarget) {
			defer wg.Done()

			if err := uc.cleanupTarget(ctx, t, cutoff); err != nil {
				uc.logger.Warnf("Cleanup failed for %s: %v", t.Name, err)
			}
		}(target)
	}

	wg.Wait()
}

func (uc *Cleanup) cleanupTarget(ctx context.Context, target UploadTarget, cutoff time.Time) error {
	files, err := target.Storage.GetOldFiles(ctx, cutoff)
	if err != nil {
		return err
	}

	deleted := 0
	for _, filename := range files {
		uc.logger.Infof("Deleting old backup from %s: %s", target.Name, filename)

		if err := target.Storage.Delete(ctx, filename); err != nil {
			uc.logger.Warnf("Failed to delete %s from %s: %v", filename, target.Name, err)
		} else {
			deleted++
		}
	}

	uc.logger.Infof("Deleted %d old backup(s) from %s", deleted, target.Name)
	return nil
}
