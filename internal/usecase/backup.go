package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/semmidev/argos/internal/domain"
)

// BackupRunner executes one backup cycle: plan paths, dump, best-effort
// upload, optional replication into the secondary cluster, notification,
// retention cleanup. It never returns a result to its caller; every outcome
// is surfaced through logs and notifiers.
type BackupRunner struct {
	dumper        domain.Dumper
	planner       RunPlanner
	uploadTargets []UploadTarget
	notifiers     []Notifier
	cleanup       *Cleanup
	logger        Logger
	replicate     bool
}

type UploadTarget struct {
	Name    string
	Storage domain.Storage
}

type Notifier struct {
	Name     string
	Notifier domain.Notifier
}

type RunPlanner interface {
	PlanRun(now time.Time, trigger domain.Trigger) (domain.Run, error)
}

type LocalPruner interface {
	Prune(retentionDays int) (int, error)
}

type Logger interface {
	Infof(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Warnf(template string, args ...interface{})
}

func NewBackupRunner(
	dumper domain.Dumper,
	planner RunPlanner,
	uploadTargets []UploadTarget,
	notifiers []Notifier,
	cleanup *Cleanup,
	logger Logger,
	replicate bool,
) *BackupRunner {
	return &BackupRunner{
		dumper:        dumper,
		planner:       planner,
		uploadTargets: uploadTargets,
		notifiers:     notifiers,
		cleanup:       cleanup,
		logger:        logger,
		replicate:     replicate,
	}
}

// Execute runs one backup cycle. A dump failure aborts the run before any
// upload, replication, or cleanup. Upload failures are logged and ignored.
// A replication failure skips the success notification but cleanup still
// runs. Cleanup never runs after a dump failure.
func (uc *BackupRunner) Execute(ctx context.Context, trigger domain.Trigger) {
	start := time.Now()
	dbName := uc.dumper.GetName()
	uc.logger.Infof("[%s] Starting backup run (trigger: %s)", dbName, trigger)

	run, err := uc.planner.PlanRun(start, trigger)
	if err != nil {
		uc.logger.Errorf("[%s] Failed to prepare run directory: %v", dbName, err)
		return
	}

	uc.logger.Infof("[%s] Dumping to: %s", dbName, run.ArchivePath)
	if err := uc.dumper.Dump(ctx, run.ArchivePath); err != nil {
		uc.logger.Errorf("[%s] Dump failed: %v", dbName, err)
		uc.notifyFailure(ctx, run, "dump", err)
		return
	}

	if len(uc.uploadTargets) > 0 {
		uc.uploadArchive(ctx, run)
	}

	replicated := false
	if uc.replicate {
		uc.logger.Infof("[%s] Replicating into secondary cluster...", dbName)
		if err := uc.dumper.Replicate(ctx); err != nil {
			uc.logger.Errorf("[%s] Replication failed: %v", dbName, err)
			uc.notifyFailure(ctx, run, "replication", err)
			uc.runCleanup(ctx)
			return
		}
		uc.logger.Infof("[%s] Replication complete", dbName)
		replicated = true
	}

	uc.notifySuccess(ctx, run, replicated)
	uc.runCleanup(ctx)

	uc.logger.Infof("[%s] Backup run completed in %s: %s",
		dbName, time.Since(start).Round(time.Second), run.BackupID)
}

// uploadArchive pushes the archive to every remote target. Failures are
// warnings only and never stop the run.
func (uc *BackupRunner) uploadArchive(ctx context.Context, run domain.Run) {
	var wg sync.WaitGroup
	dbName := uc.dumper.GetName()

	for _, target := range uc.uploadTargets {
		wg.Add(1)
		go func(t UploadTarget) {
			defer wg.Done()

			uc.logger.Infof("[%s] Uploading %s to %s...", dbName, run.BackupID, t.Name)
			if err := t.Storage.Upload(ctx, run.ArchivePath, run.BackupID+".gz"); err != nil {
				uc.logger.Warnf("[%s] Upload to %s failed: %v", dbName, t.Name, err)
			} else {
				uc.logger.Infof("[%s] Successfully uploaded to %s", dbName, t.Name)
			}
		}(target)
	}

	wg.Wait()
}

func (uc *BackupRunner) notifySuccess(ctx context.Context, run domain.Run, replicated bool) {
	for _, n := range uc.notifiers {
		if err := n.Notifier.NotifySuccess(ctx, run, replicated); err != nil {
			uc.logger.Errorf("Failed to send success notification via %s: %v", n.Name, err)
		}
	}
}

func (uc *BackupRunner) notifyFailure(ctx context.Context, run domain.Run, step string, cause error) {
	for _, n := range uc.notifiers {
		if err := n.Notifier.NotifyFailure(ctx, run, step, cause); err != nil {
			uc.logger.Errorf("Failed to send failure notification via %s: %v", n.Name, err)
		}
	}
}

func (uc *BackupRunner) runCleanup(ctx context.Context) {
	if uc.cleanup == nil {
		return
	}
	if err := uc.cleanup.Execute(ctx); err != nil {
		uc.logger.Warnf("Cleanup failed: %v", err)
	}
}
