package notifier

import (
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/semmidev/argos/internal/config"
	"github.com/semmidev/argos/internal/domain"
)

func sampleRun() domain.Run {
	return domain.Run{
		Trigger:     domain.TriggerScheduled,
		StartedAt:   time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC),
		Dir:         "/var/backups/appdb/2026-08-30/14",
		ArchivePath: "/var/backups/appdb/2026-08-30/14/backup_2026-08-30_14-00.gz",
		BackupID:    "backup_2026-08-30_14-00",
	}
}

func TestMailNotifier(t *testing.T) {
	Convey("Given the mail notifier", t, func() {
		Convey("NewMail", func() {
			Convey("When no from address is configured", func() {
				n := NewMail(&config.MailConfig{
					Host:     "smtp.example.com",
					Port:     587,
					Username: "backup@example.com",
					To:       "ops@example.com",
				}, "argos")

				Convey("It should fall back to the username", func() {
					So(n.from, ShouldEqual, "backup@example.com")
					So(n.to, ShouldEqual, "ops@example.com")
				})
			})

			Convey("When a from address is configured", func() {
				n := NewMail(&config.MailConfig{
					Host: "smtp.example.com",
					From: "noreply@example.com",
					To:   "ops@example.com",
				}, "argos")

				Convey("It should use it", func() {
					So(n.from, ShouldEqual, "noreply@example.com")
				})
			})
		})

		Convey("successBody", func() {
			Convey("For a file-only backup", func() {
				body := successBody(sampleRun(), false)

				Convey("It should report the path, status, and trigger", func() {
					So(body, ShouldContainSubstring, "backup_2026-08-30_14-00.gz")
					So(body, ShouldContainSubstring, "file-only backup")
					So(body, ShouldContainSubstring, "scheduled")
				})
			})

			Convey("For a replicated backup", func() {
				run := sampleRun()
				run.Trigger = domain.TriggerManual
				body := successBody(run, true)

				Convey("It should report replication and the manual trigger", func() {
					So(body, ShouldContainSubstring, "replicated to secondary cluster")
					So(body, ShouldContainSubstring, "manual")
				})
			})
		})

		Convey("failureBody", func() {
			cause := errors.New("mongodump failed: exit status 1, output: server selection timeout")
			body := failureBody(sampleRun(), "dump", cause)

			Convey("It should carry the failing step and the tool's error text", func() {
				So(body, ShouldContainSubstring, "failed during dump")
				So(body, ShouldContainSubstring, "server selection timeout")
				So(body, ShouldContainSubstring, "backup_2026-08-30_14-00.gz")
			})
		})
	})
}
