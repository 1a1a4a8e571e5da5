package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type sweepStorage struct {
	oldFiles   []string
	oldErr     error
	deleteErr  error
	deleted    []string
	lastCutoff time.Time
}

func (s *sweepStorage) Upload(ctx context.Context, localPath, remoteName string) error {
	return nil
}

func (s *sweepStorage) List(ctx context.Context) ([]string, error) { return nil, nil }

func (s *sweepStorage) Delete(ctx context.Context, remoteName string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, remoteName)
	return nil
}

func (s *sweepStorage) GetOldFiles(ctx context.Context, cutoff time.Time) ([]string, error) {
	s.lastCutoff = cutoff
	return s.oldFiles, s.oldErr
}

type failingPruner struct {
	err error
}

func (f *failingPruner) Prune(retentionDays int) (int, error) { return 0, f.err }

func TestCleanup(t *testing.T) {
	Convey("Given a Cleanup use case", t, func() {
		pruner := &fakePruner{}

		Convey("When executing with no remote targets", func() {
			uc := NewCleanup(pruner, nil, nopLogger{}, 7)
			err := uc.Execute(context.Background())

			Convey("It should prune the local tree with the configured retention", func() {
				So(err, ShouldBeNil)
				So(pruner.pruneCalls, ShouldEqual, 1)
				So(pruner.retention, ShouldEqual, 7)
			})
		})

		Convey("When a remote target has expired archives", func() {
			remote := &sweepStorage{oldFiles: []string{
				"backup_2026-08-10_03-00.gz",
				"backup_2026-08-12_09-00.gz",
			}}
			uc := NewCleanup(pruner, []UploadTarget{{Name: "s3", Storage: remote}}, nopLogger{}, 7)
			err := uc.Execute(context.Background())

			Convey("It should delete each expired archive", func() {
				So(err, ShouldBeNil)
				So(remote.deleted, ShouldResemble, []string{
					"backup_2026-08-10_03-00.gz",
					"backup_2026-08-12_09-00.gz",
				})
			})

			Convey("The cutoff should reflect the retention window", func() {
				expected := time.Now().AddDate(0, 0, -7)
				So(remote.lastCutoff, ShouldHappenWithin, time.Minute, expected)
			})
		})

		Convey("When listing old remote files fails", func() {
			remote := &sweepStorage{oldErr: errors.New("failed to list S3 objects")}
			uc := NewCleanup(pruner, []UploadTarget{{Name: "s3", Storage: remote}}, nopLogger{}, 7)
			err := uc.Execute(context.Background())

			Convey("The error is swallowed and local pruning still happens", func() {
				So(err, ShouldBeNil)
				So(pruner.pruneCalls, ShouldEqual, 1)
			})
		})

		Convey("When deleting a remote file fails", func() {
			remote := &sweepStorage{
				oldFiles:  []string{"backup_2026-08-10_03-00.gz"},
				deleteErr: errors.New("failed to delete from S3"),
			}
			uc := NewCleanup(pruner, []UploadTarget{{Name: "s3", Storage: remote}}, nopLogger{}, 7)
			err := uc.Execute(context.Background())

			Convey("The sweep continues without escalating", func() {
				So(err, ShouldBeNil)
				So(len(remote.deleted), ShouldEqual, 0)
			})
		})

		Convey("When local pruning fails", func() {
			uc := NewCleanup(&failingPruner{err: errors.New("failed to read backup directory")},
				nil, nopLogger{}, 7)
			err := uc.Execute(context.Background())

			Convey("The error is logged, never returned", func() {
				So(err, ShouldBeNil)
			})
		})
	})
}
