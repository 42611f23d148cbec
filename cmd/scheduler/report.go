package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/schooltech/scheduler-core/internal/domain"
	"github.com/schooltech/scheduler-core/internal/jobqueue"
	"github.com/schooltech/scheduler-core/internal/reporter"
	"github.com/schooltech/scheduler-core/internal/validator"
	"github.com/schooltech/scheduler-core/pkg/errors"
	"github.com/schooltech/scheduler-core/pkg/jobs"
	"github.com/schooltech/scheduler-core/pkg/storage"
)

func newReportCmd() *cobra.Command {
	var (
		schedulePath string
		dataDir      string
		format       string
		student      string
		teacher      string
		async        bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate reports from a schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(schedulePath, dataDir, format, student, teacher, async)
		},
	}
	cmd.Flags().StringVarP(&schedulePath, "schedule", "s", "", "path to schedule.json file")
	cmd.Flags().StringVarP(&dataDir, "data", "d", "", "directory containing input data")
	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "output format: json, markdown, text, csv, or pdf")
	cmd.Flags().StringVar(&student, "student", "", "generate schedule for a specific student id")
	cmd.Flags().StringVar(&teacher, "teacher", "", "generate schedule for a specific teacher id")
	cmd.Flags().BoolVar(&async, "async", false, "render through the background job queue instead of inline")
	cmd.MarkFlagRequired("schedule") //nolint:errcheck
	cmd.MarkFlagRequired("data")     //nolint:errcheck

	return cmd
}

func runReport(schedulePath, dataDir, format, student, teacher string, async bool) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.log.Sync() //nolint:errcheck

	input, _, err := loadInput(dataDir, app.cfg.Schedule)
	if err != nil {
		return err
	}
	schedule, err := loadSchedule(schedulePath)
	if err != nil {
		return err
	}

	if async {
		return runReportAsync(app, schedule, input, format, student, teacher)
	}
	return runReportInline(schedule, input, format, student, teacher)
}

func runReportInline(schedule *domain.Schedule, input domain.ScheduleInput, format, student, teacher string) error {
	report := validator.Validate(schedule, input)

	switch {
	case student != "":
		if !hasStudent(input, domain.StudentId(student)) {
			fmt.Println("Student not found")
			return nil
		}
		view := reporter.BuildStudentSchedule(schedule, domain.StudentId(student))
		data, err := render(format, fmt.Sprintf("Schedule for %s", student), schedule, report, view)
		if err != nil {
			return err
		}
		os.Stdout.Write(data) //nolint:errcheck
		fmt.Println()
	case teacher != "":
		if !hasTeacher(input, domain.TeacherId(teacher)) {
			fmt.Println("Teacher not found")
			return nil
		}
		view := reporter.BuildTeacherSchedule(schedule, domain.TeacherId(teacher))
		data, err := render(format, fmt.Sprintf("Schedule for %s", teacher), schedule, report, view)
		if err != nil {
			return err
		}
		os.Stdout.Write(data) //nolint:errcheck
		fmt.Println()
	default:
		printSummary(schedule, report)
	}
	return nil
}

func hasStudent(input domain.ScheduleInput, id domain.StudentId) bool {
	for _, s := range input.Students {
		if s.Id == id {
			return true
		}
	}
	return false
}

func hasTeacher(input domain.ScheduleInput, id domain.TeacherId) bool {
	for _, t := range input.Teachers {
		if t.Id == id {
			return true
		}
	}
	return false
}

func render(format, heading string, schedule *domain.Schedule, report validator.Report, view reporter.StudentSchedule) ([]byte, error) {
	switch format {
	case "json":
		return reporter.JSON(schedule, report)
	case "csv":
		return reporter.CSV(schedule)
	case "pdf":
		return reporter.PDF(heading, view)
	case "text", "txt":
		return []byte(reporter.Text(heading, view)), nil
	default:
		return []byte(reporter.Markdown(heading, view)), nil
	}
}

func runReportAsync(app *appContext, schedule *domain.Schedule, input domain.ScheduleInput, format, student, teacher string) error {
	store, err := storage.NewDir(app.cfg.Reports.StorageDir)
	if err != nil {
		return errors.InputError("prepare report storage", err)
	}
	if removed, err := store.Sweep(app.cfg.Reports.SignedURLTTL); err == nil && removed > 0 {
		app.log.Info("swept expired reports", zap.Int("removed", removed))
	}

	queue := jobqueue.NewReportQueue(store, jobs.Options{
		Workers:  app.cfg.Reports.WorkerConcurrency,
		Attempts: app.cfg.Reports.WorkerRetries,
	}, app.log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	queue.Start(ctx)
	defer queue.Stop()

	job := jobqueue.ReportJob{
		Schedule:  schedule,
		Report:    validator.Validate(schedule, input),
		Format:    format,
		StudentId: domain.StudentId(student),
		TeacherId: domain.TeacherId(teacher),
		Filename:  fmt.Sprintf("report-%d.%s", time.Now().UnixNano(), extensionFor(format)),
	}

	id, err := queue.Enqueue(job)
	if err != nil {
		return errors.InputError("enqueue report job", err)
	}
	fmt.Printf("Report job %s queued: %s\n", id, job.Filename)

	signer := storage.NewSigner(app.cfg.Reports.SignedURLSecret, app.cfg.Reports.SignedURLTTL)
	if token, expires, err := signer.Sign(job.Filename); err == nil {
		fmt.Printf("Download (valid until %s): /reports/%s\n", expires.Format(time.RFC3339), token)
	}
	return nil
}

func extensionFor(format string) string {
	switch format {
	case "json":
		return "json"
	case "csv":
		return "csv"
	case "pdf":
		return "pdf"
	case "text", "txt":
		return "txt"
	default:
		return "md"
	}
}
