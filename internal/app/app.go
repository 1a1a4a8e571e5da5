package app

import (
	"context"
	"fmt"

	"github.com/semmidev/argos/internal/adapter/database"
	"github.com/semmidev/argos/internal/adapter/notifier"
	"github.com/semmidev/argos/internal/adapter/storage"
	"github.com/semmidev/argos/internal/config"
	"github.com/semmidev/argos/internal/domain"
	"github.com/semmidev/argos/internal/infrastructure/logger"
	"github.com/semmidev/argos/internal/infrastructure/scheduler"
	"github.com/semmidev/argos/internal/usecase"
)

type App struct {
	config    *config.Config
	logger    *logger.Logger
	scheduler *scheduler.Scheduler
	runner    *usecase.BackupRunner
}

func New(cfg *config.Config) (*App, error) {
	// Initialize logger
	log, err := logger.New(cfg.App.LogLevel, cfg.App.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Infof("Starting %s", cfg.App.Name)

	// Initialize the local backup tree
	localStorage, err := storage.NewLocal(cfg.Backup.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize local storage: %w", err)
	}

	// Initialize the source database
	db := database.NewMongoDB(&cfg.Source, &cfg.Replica)

	ctx := context.Background()
	if err := db.Ping(ctx); err != nil {
		log.Warnf("Source database not reachable at startup: %v", err)
	} else {
		log.Infof("✓ Connected to source database (%s)", cfg.Source.Database)
	}

	if cfg.HasReplica() {
		log.Infof("✓ Replication enabled (parallel collections: %d)",
			cfg.Replica.ParallelCollections)
	}

	// Initialize upload targets and notifiers
	uploadTargets := initializeUploadTargets(cfg, log)
	notifiers := initializeNotifiers(cfg, log)

	// Initialize cleanup and the backup runner
	cleanupUC := usecase.NewCleanup(
		localStorage,
		uploadTargets,
		log,
		cfg.Backup.RetentionDays,
	)

	runner := usecase.NewBackupRunner(
		db,
		localStorage,
		uploadTargets,
		notifiers,
		cleanupUC,
		log,
		cfg.HasReplica(),
	)

	return &App{
		config:    cfg,
		logger:    log,
		scheduler: scheduler.New(),
		runner:    runner,
	}, nil
}

func initializeUploadTargets(cfg *config.Config, log *logger.Logger) []usecase.UploadTarget {
	var targets []usecase.UploadTarget

	for _, targetCfg := range cfg.GetEnabledUploadTargets() {
		var stor domain.Storage
		var err error

		switch targetCfg.Type {
		case "s3":
			stor, err = storage.NewS3(&targetCfg)
			if err != nil {
				log.Errorf("Failed to initialize S3: %v", err)
				continue
			}
			log.Infof("✓ AWS S3 upload enabled (bucket: %s)", targetCfg.Bucket)

		case "gdrive":
			stor, err = storage.NewGDrive(&targetCfg)
			if err != nil {
				log.Errorf("Failed to initialize Google Drive: %v", err)
				continue
			}
			log.Infof("✓ Google Drive upload enabled")

		default:
			log.Warnf("Unknown upload target type: %s", targetCfg.Type)
			continue
		}

		targets = append(targets, usecase.UploadTarget{
			Name:    targetCfg.Type,
			Storage: stor,
		})
	}

	return targets
}

func initializeNotifiers(cfg *config.Config, log *logger.Logger) []usecase.Notifier {
	var notifiers []usecase.Notifier

	if cfg.Notify.Mail.Enabled() {
		notifiers = append(notifiers, usecase.Notifier{
			Name:     "mail",
			Notifier: notifier.NewMail(&cfg.Notify.Mail, cfg.App.Name),
		})
		log.Infof("✓ Mail notifications enabled (to: %s)", cfg.Notify.Mail.To)
	}

	if cfg.Notify.Telegram.Enabled() {
		tg, err := notifier.NewTelegram(&cfg.Notify.Telegram, cfg.App.Name)
		if err != nil {
			log.Errorf("Failed to initialize Telegram: %v", err)
		} else {
			notifiers = append(notifiers, usecase.Notifier{
				Name:     "telegram",
				Notifier: tg,
			})
			log.Infof("✓ Telegram notifications enabled")
		}
	}

	if len(notifiers) == 0 {
		log.Warnf("No notification channel configured, run outcomes are log-only")
	}

	return notifiers
}

func (a *App) Run(ctx context.Context, runNow bool) error {
	if err := a.scheduler.AddJob(a.config.Backup.Schedule, func(ctx context.Context) {
		a.runner.Execute(ctx, domain.TriggerScheduled)
	}); err != nil {
		return fmt.Errorf("failed to schedule backup: %w", err)
	}

	a.scheduler.Start()
	a.logger.Infof("Scheduler started: %s", a.config.Backup.Schedule)

	if runNow {
		a.logger.Infof("=== Triggered manual backup run ===")
		go a.runner.Execute(ctx, domain.TriggerManual)
	}

	// Keep running until context is cancelled
	<-ctx.Done()
	return nil
}

func (a *App) Shutdown() {
	a.logger.Infof("Shutting down application...")
	a.scheduler.Stop()
	a.logger.Close()
}
