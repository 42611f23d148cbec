// Package reporter renders a finalized domain.Schedule (plus its
// validator.Report) into the human- and machine-readable forms the CLI
// can hand back to a caller: canonical JSON, per-student/teacher
// Markdown and plain text summaries, a tabular PDF, and a flat CSV
// roster.
package reporter

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/schooltech/scheduler-core/internal/domain"
	"github.com/schooltech/scheduler-core/internal/validator"
	"github.com/schooltech/scheduler-core/pkg/export"
)

// JSON renders the schedule and its validation report as canonical,
// indented JSON — the core contract other tools consume.
func JSON(schedule *domain.Schedule, report validator.Report) ([]byte, error) {
	out := struct {
		Schedule *domain.Schedule `json:"schedule"`
		Report   validator.Report `json:"validation"`
	}{schedule, report}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("reporter: marshal json: %w", err)
	}
	return data, nil
}

// StudentSchedule is one student's periods-to-section view, used by
// both the markdown and text renderers.
type StudentSchedule struct {
	StudentId domain.StudentId
	Entries   []ScheduleEntry
}

// ScheduleEntry is a single (period, section) row in a rendered
// schedule view.
type ScheduleEntry struct {
	Period  domain.Period
	Section *domain.Section
}

// BuildStudentSchedule collects every section a student is enrolled in,
// sorted by day then slot.
func BuildStudentSchedule(schedule *domain.Schedule, studentId domain.StudentId) StudentSchedule {
	var entries []ScheduleEntry
	for _, section := range schedule.Sections {
		if !section.HasStudent(studentId) {
			continue
		}
		for _, p := range section.Periods {
			entries = append(entries, ScheduleEntry{Period: p, Section: section})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Period.Day != entries[j].Period.Day {
			return entries[i].Period.Day < entries[j].Period.Day
		}
		return entries[i].Period.Slot < entries[j].Period.Slot
	})
	return StudentSchedule{StudentId: studentId, Entries: entries}
}

// BuildTeacherSchedule collects every section a teacher is assigned to
// teach, sorted by day then slot.
func BuildTeacherSchedule(schedule *domain.Schedule, teacherId domain.TeacherId) StudentSchedule {
	var entries []ScheduleEntry
	for _, section := range schedule.Sections {
		if section.TeacherId == nil || *section.TeacherId != teacherId {
			continue
		}
		for _, p := range section.Periods {
			entries = append(entries, ScheduleEntry{Period: p, Section: section})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Period.Day != entries[j].Period.Day {
			return entries[i].Period.Day < entries[j].Period.Day
		}
		return entries[i].Period.Slot < entries[j].Period.Slot
	})
	return StudentSchedule{StudentId: domain.StudentId(teacherId), Entries: entries}
}

// Markdown renders a schedule view as a Markdown table.
func Markdown(heading string, view StudentSchedule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", heading)
	b.WriteString("| Day | Slot | Course | Section |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, e := range view.Entries {
		fmt.Fprintf(&b, "| %d | %d | %s | %s |\n", e.Period.Day, e.Period.Slot, e.Section.CourseId, e.Section.Id)
	}
	return b.String()
}

// Text renders a schedule view as plain, fixed-format text.
func Text(heading string, view StudentSchedule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", heading)
	fmt.Fprintf(&b, "%s\n", strings.Repeat("=", len(heading)))
	for _, e := range view.Entries {
		fmt.Fprintf(&b, "day %d slot %d  %-12s %s\n", e.Period.Day, e.Period.Slot, e.Section.CourseId, e.Section.Id)
	}
	return b.String()
}

// PDF renders a schedule view as a tabular PDF via gofpdf.
func PDF(heading string, view StudentSchedule) ([]byte, error) {
	rows := make([][]string, len(view.Entries))
	for i, e := range view.Entries {
		rows[i] = []string{
			fmt.Sprintf("%d", e.Period.Day),
			fmt.Sprintf("%d", e.Period.Slot),
			string(e.Section.CourseId),
			string(e.Section.Id),
		}
	}
	return export.PDF(export.Table{
		Title:   heading,
		Columns: []string{"Day", "Slot", "Course", "Section"},
		Rows:    rows,
	})
}

// CSV renders the full section roster as a flat CSV: one row per
// (section, student) enrollment.
func CSV(schedule *domain.Schedule) ([]byte, error) {
	rows := make([][]string, 0, schedule.TotalAssignments())
	for _, section := range schedule.Sections {
		teacher := ""
		if section.TeacherId != nil {
			teacher = string(*section.TeacherId)
		}
		room := ""
		if section.RoomId != nil {
			room = string(*section.RoomId)
		}
		for _, studentId := range section.EnrolledStudents {
			rows = append(rows, []string{
				string(section.Id),
				string(section.CourseId),
				teacher,
				room,
				string(studentId),
			})
		}
	}
	return export.CSV(export.Table{
		Columns: []string{"Section", "Course", "Teacher", "Room", "Student"},
		Rows:    rows,
	})
}
