// Package jobqueue renders schedule reports on a background worker pool;
// `report --async` enqueues one rendering job for the requested output
// format.
package jobqueue

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/schooltech/scheduler-core/internal/domain"
	"github.com/schooltech/scheduler-core/internal/reporter"
	"github.com/schooltech/scheduler-core/internal/validator"
	"github.com/schooltech/scheduler-core/pkg/jobs"
	"github.com/schooltech/scheduler-core/pkg/storage"
)

// ReportJob is the payload carried by one report-rendering job.
type ReportJob struct {
	Schedule  *domain.Schedule
	Report    validator.Report
	Format    string
	StudentId domain.StudentId
	TeacherId domain.TeacherId
	Filename  string
}

// ReportQueue renders report jobs onto disk through a bounded worker pool.
type ReportQueue struct {
	pool    *jobs.Pool[ReportJob]
	storage *storage.Dir
}

// NewReportQueue builds a report queue backed by store, using opts for
// worker pool sizing and retry behaviour.
func NewReportQueue(store *storage.Dir, opts jobs.Options, logger *zap.Logger) *ReportQueue {
	opts.Logger = logger
	rq := &ReportQueue{storage: store}
	rq.pool = jobs.NewPool("reports", rq.render, opts)
	return rq
}

// Start begins worker consumption.
func (q *ReportQueue) Start(ctx context.Context) { q.pool.Start(ctx) }

// Stop cancels workers and waits for in-flight jobs to finish.
func (q *ReportQueue) Stop() { q.pool.Stop() }

// Enqueue submits one report-rendering job and returns its task id.
func (q *ReportQueue) Enqueue(job ReportJob) (string, error) {
	return q.pool.Submit(job)
}

func (q *ReportQueue) render(_ context.Context, job ReportJob) error {
	data, err := q.encode(job)
	if err != nil {
		return err
	}
	if _, err := q.storage.Save(job.Filename, data); err != nil {
		return fmt.Errorf("jobqueue: save rendered report: %w", err)
	}
	return nil
}

func (q *ReportQueue) encode(job ReportJob) ([]byte, error) {
	switch job.Format {
	case "json":
		return reporter.JSON(job.Schedule, job.Report)
	case "csv":
		return reporter.CSV(job.Schedule)
	case "markdown", "text", "pdf":
		view := q.view(job)
		heading := fmt.Sprintf("Schedule for %s", view.StudentId)
		switch job.Format {
		case "markdown":
			return []byte(reporter.Markdown(heading, view)), nil
		case "text":
			return []byte(reporter.Text(heading, view)), nil
		default:
			return reporter.PDF(heading, view)
		}
	default:
		return nil, fmt.Errorf("jobqueue: unsupported report format %q", job.Format)
	}
}

func (q *ReportQueue) view(job ReportJob) reporter.StudentSchedule {
	if job.TeacherId != "" {
		return reporter.BuildTeacherSchedule(job.Schedule, job.TeacherId)
	}
	return reporter.BuildStudentSchedule(job.Schedule, job.StudentId)
}
