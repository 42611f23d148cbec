package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/schooltech/scheduler-core/internal/cache"
	"github.com/schooltech/scheduler-core/internal/domain"
	"github.com/schooltech/scheduler-core/internal/loader"
	"github.com/schooltech/scheduler-core/internal/metrics"
	"github.com/schooltech/scheduler-core/internal/pipeline"
	"github.com/schooltech/scheduler-core/internal/pipeline/studentassigner/solver/nextmvsolver"
	"github.com/schooltech/scheduler-core/internal/reporter"
	"github.com/schooltech/scheduler-core/internal/validator"
	pkgcache "github.com/schooltech/scheduler-core/pkg/cache"
	"github.com/schooltech/scheduler-core/pkg/errors"
	"github.com/schooltech/scheduler-core/pkg/storage"
)

// loadInput reads and validates the four input files under dir against
// the scheduling config.
func loadInput(dir string, cfg domain.ScheduleConfig) (domain.ScheduleInput, []string, error) {
	return loader.New().Load(dir, cfg)
}

// runPipeline generates a schedule for input and validates it against
// the same input, returning both. observer may be nil; pass a
// *metrics.Collector to record per-phase timing.
func runPipeline(ctx context.Context, input domain.ScheduleInput, observer pipeline.PhaseObserver) (*domain.Schedule, validator.Report, error) {
	schedule, err := pipeline.Generate(ctx, nextmvsolver.New(), input, observer)
	if err != nil {
		return nil, validator.Report{}, errors.SolverError("generate schedule", err)
	}
	report := validator.Validate(schedule, input)
	schedule.Metadata.Score = report.TotalScore
	return schedule, report, nil
}

// openScheduleCache connects to the configured Redis instance and wraps
// it in a result cache, used by `schedule --cache`.
func openScheduleCache(ctx context.Context, app *appContext) (*cache.Store, error) {
	client, err := pkgcache.NewRedis(ctx, app.cfg.Redis)
	if err != nil {
		return nil, errors.InputError("connect to cache", err)
	}
	return cache.New(client, app.log, app.cfg.Redis.TTL, true), nil
}

// resolveSchedule returns a cached schedule for input when store is
// non-nil and holds a byte-identical entry, otherwise it runs the
// pipeline and populates the cache for next time. collector, if
// non-nil, records the hit/miss.
func resolveSchedule(ctx context.Context, input domain.ScheduleInput, store *cache.Store, observer pipeline.PhaseObserver, collector *metrics.Collector) (*domain.Schedule, validator.Report, error) {
	if store == nil {
		return runPipeline(ctx, input, observer)
	}

	key, err := cache.Key(input)
	if err != nil {
		return nil, validator.Report{}, errors.InputError("compute cache key", err)
	}

	var cached domain.Schedule
	hit, err := store.Get(ctx, key, &cached)
	if err != nil {
		return nil, validator.Report{}, errors.InputError("read result cache", err)
	}
	if collector != nil {
		collector.RecordCacheLookup(hit)
	}
	if hit {
		return &cached, validator.Validate(&cached, input), nil
	}

	schedule, report, err := runPipeline(ctx, input, observer)
	if err != nil {
		return nil, validator.Report{}, err
	}
	if err := store.Set(ctx, key, schedule); err != nil {
		return nil, validator.Report{}, errors.InputError("write result cache", err)
	}
	return schedule, report, nil
}

// reportEnvelope mirrors the layout reporter.JSON writes: a schedule
// plus the validation report that scored it. loadBaselineScore reads it
// back to recover a prior run's score.
type reportEnvelope struct {
	Schedule *domain.Schedule `json:"schedule"`
	Report   validator.Report `json:"validation"`
}

// loadBaselineScore reads path's previously written schedule.json, if
// any, and returns the score stamped in its metadata.
func loadBaselineScore(path string) (float64, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	var env reportEnvelope
	if err := json.Unmarshal(data, &env); err != nil || env.Schedule == nil {
		return 0, false
	}
	return env.Schedule.Metadata.Score, true
}

// loadSchedule reads a previously written schedule.json from path.
func loadSchedule(path string) (*domain.Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.InputError("read schedule file", err)
	}
	var env reportEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.InputError("parse schedule file", err)
	}
	if env.Schedule == nil {
		return nil, errors.InputError("parse schedule file", fmt.Errorf("missing schedule payload"))
	}
	return env.Schedule, nil
}

// parseFormats splits a comma-separated --format value into its parts,
// expanding "all" to every supported output format and discarding
// unknown tokens.
func parseFormats(format string) []string {
	if format == "all" {
		return []string{"json", "markdown", "text"}
	}
	var out []string
	for _, f := range strings.Split(format, ",") {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "json":
			out = append(out, "json")
		case "markdown", "md":
			out = append(out, "markdown")
		case "text", "txt":
			out = append(out, "text")
		}
	}
	return out
}

// writeReports renders schedule+report in each requested format and
// saves them under outputDir as schedule.json / schedule.md / schedule.txt.
func writeReports(schedule *domain.Schedule, input domain.ScheduleInput, report validator.Report, outputDir string, formats []string) error {
	store, err := storage.NewDir(outputDir)
	if err != nil {
		return errors.InputError("prepare output directory", err)
	}

	for _, format := range formats {
		switch format {
		case "json":
			data, err := reporter.JSON(schedule, report)
			if err != nil {
				return errors.InputError("render json report", err)
			}
			if _, err := store.Save("schedule.json", data); err != nil {
				return errors.InputError("write json report", err)
			}
		case "markdown":
			body := reporter.Markdown("Schedule Summary", schoolWideView(schedule))
			if _, err := store.Save("schedule.md", []byte(body)); err != nil {
				return errors.InputError("write markdown report", err)
			}
		case "text":
			body := reporter.Text("Schedule Summary", schoolWideView(schedule))
			if _, err := store.Save("schedule.txt", []byte(body)); err != nil {
				return errors.InputError("write text report", err)
			}
		}
	}
	return nil
}

// schoolWideView flattens every section into one view for the
// whole-school markdown/text summary. Entries follow section order, each
// section's periods in the order the section lists them; they are not
// sorted by day or slot.
func schoolWideView(schedule *domain.Schedule) reporter.StudentSchedule {
	var entries []reporter.ScheduleEntry
	for _, section := range schedule.Sections {
		for _, p := range section.Periods {
			entries = append(entries, reporter.ScheduleEntry{Period: p, Section: section})
		}
	}
	return reporter.StudentSchedule{StudentId: "all", Entries: entries}
}

// printSummary writes a short human-readable recap of schedule and its
// validation report to stdout.
func printSummary(schedule *domain.Schedule, report validator.Report) {
	fmt.Printf("Sections: %d\n", len(schedule.Sections))
	fmt.Printf("Assignments: %d\n", schedule.TotalAssignments())
	fmt.Printf("Unassigned: %d\n", len(schedule.Unassigned))
	if report.IsValid {
		fmt.Println("Hard constraints: satisfied")
	} else {
		fmt.Printf("Hard constraints: %d violation(s)\n", len(report.HardViolations))
		for _, v := range report.HardViolations {
			fmt.Printf("  - %s: %s\n", v.Constraint, v.Message)
		}
	}
	fmt.Printf("Overall score: %.1f/100\n", report.TotalScore)
}
