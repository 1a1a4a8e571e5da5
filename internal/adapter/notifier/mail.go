package notifier

import (
	"context"
	"fmt"

	"github.com/semmidev/argos/internal/config"
	"github.com/semmidev/argos/internal/domain"
	"gopkg.in/gomail.v2"
)

// MailNotifier sends one plain-text mail per terminal run outcome.
type MailNotifier struct {
	dialer  *gomail.Dialer
	appName string
	from    string
	to      string
}

func NewMail(cfg *config.MailConfig, appName string) *MailNotifier {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	return &MailNotifier{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		appName: appName,
		from:    from,
		to:      cfg.To,
	}
}

func (n *MailNotifier) NotifySuccess(ctx context.Context, run domain.Run, replicated bool) error {
	subject := fmt.Sprintf("[%s] Backup succeeded: %s", n.appName, run.BackupID)
	body := successBody(run, replicated)
	return n.send(subject, body)
}

func (n *MailNotifier) NotifyFailure(ctx context.Context, run domain.Run, step string, cause error) error {
	subject := fmt.Sprintf("[%s] Backup failed: %s", n.appName, step)
	body := failureBody(run, step, cause)
	return n.send(subject, body)
}

func (n *MailNotifier) send(subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

func successBody(run domain.Run, replicated bool) string {
	replication := "file-only backup"
	if replicated {
		replication = "replicated to secondary cluster"
	}

	return fmt.Sprintf(
		"Backup completed successfully.\n\n"+
			"File: %s\n"+
			"Replication: %s\n"+
			"Trigger: %s\n"+
			"Started: %s\n",
		run.ArchivePath,
		replication,
		run.Trigger,
		run.StartedAt.Format("2006-01-02 15:04:05"),
	)
}

func failureBody(run domain.Run, step string, cause error) string {
	return fmt.Sprintf(
		"Backup run failed during %s.\n\n"+
			"File: %s\n"+
			"Trigger: %s\n"+
			"Started: %s\n\n"+
			"Error:\n%v\n",
		step,
		run.ArchivePath,
		run.Trigger,
		run.StartedAt.Format("2006-01-02 15:04:05"),
		cause,
	)
}
