package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestScheduler(t *testing.T) {
	Convey("Given a Scheduler", t, func() {
		Convey("New function", func() {
			scheduler := New()

			Convey("It should create a new scheduler successfully", func() {
				So(scheduler, ShouldNotBeNil)
				So(scheduler.cron, ShouldNotBeNil)
			})
		})

		Convey("AddJob function", func() {
			scheduler := New()

			Convey("When adding a job with a valid cron spec", func() {
				tempDir, err := os.MkdirTemp("", "scheduler_test")
				So(err, ShouldBeNil)
				defer os.RemoveAll(tempDir)

				markerFile := filepath.Join(tempDir, "job.log")
				job := func(ctx context.Context) {
					_ = os.WriteFile(markerFile, []byte("executed"), 0644)
				}

				err = scheduler.AddJob("* * * * * *", job) // Every second

				Convey("It should add the job successfully", func() {
					So(err, ShouldBeNil)

					scheduler.Start()
					time.Sleep(2 * time.Second)
					scheduler.Stop()

					content, err := os.ReadFile(markerFile)
					So(err, ShouldBeNil)
					So(string(content), ShouldEqual, "executed")
				})
			})

			Convey("When adding a job with an invalid cron spec", func() {
				job := func(ctx context.Context) {}
				err := scheduler.AddJob("invalid spec", job)

				Convey("It should return an error", func() {
					So(err, ShouldNotBeNil)
					So(err.Error(), ShouldContainSubstring, "expected exactly 6 fields")
				})
			})
		})

		Convey("Start and Stop methods", func() {
			scheduler := New()

			Convey("When starting and stopping the scheduler", func() {
				tempDir, err := os.MkdirTemp("", "scheduler_test")
				So(err, ShouldBeNil)
				defer os.RemoveAll(tempDir)

				markerFile := filepath.Join(tempDir, "job.log")
				job := func(ctx context.Context) {
					_ = os.WriteFile(markerFile, []byte("executed"), 0644)
				}

				err = scheduler.AddJob("* * * * * *", job) // Every second
				So(err, ShouldBeNil)

				Convey("It should start and stop without error", func() {
					So(func() { scheduler.Start() }, ShouldNotPanic)

					time.Sleep(2 * time.Second)

					_, err := os.Stat(markerFile)
					So(err, ShouldBeNil)

					So(func() { scheduler.Stop() }, ShouldNotPanic)

					// No further executions after stopping
					os.Remove(markerFile)
					time.Sleep(2 * time.Second)
					_, err = os.Stat(markerFile)
					So(os.IsNotExist(err), ShouldBeTrue)
				})
			})
		})
	})
}
