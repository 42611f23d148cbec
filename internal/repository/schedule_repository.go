// Package repository persists finalized schedule runs so a school term
// can keep a versioned history of every generated timetable.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/schooltech/scheduler-core/internal/domain"
	"github.com/schooltech/scheduler-core/internal/validator"
)

// ScheduleRecord is one versioned, persisted run of the pipeline for a
// school term.
type ScheduleRecord struct {
	ID        string         `db:"id"`
	Term      string         `db:"term"`
	Version   int            `db:"version"`
	Score     float64        `db:"score"`
	Meta      types.JSONText `db:"meta"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// recordMeta is the JSON payload stored in ScheduleRecord.Meta.
type recordMeta struct {
	Schedule *domain.Schedule `json:"schedule"`
	Report   validator.Report `json:"report"`
}

// NewScheduleRecord builds a record ready for CreateVersioned, encoding
// the schedule and its validation report into the meta column.
func NewScheduleRecord(term string, schedule *domain.Schedule, report validator.Report) (*ScheduleRecord, error) {
	meta, err := json.Marshal(recordMeta{Schedule: schedule, Report: report})
	if err != nil {
		return nil, fmt.Errorf("repository: encode schedule meta: %w", err)
	}
	return &ScheduleRecord{
		Term:  term,
		Score: report.TotalScore,
		Meta:  types.JSONText(meta),
	}, nil
}

// Decode unpacks the record's meta column back into a schedule and
// validation report.
func (r *ScheduleRecord) Decode() (*domain.Schedule, validator.Report, error) {
	var m recordMeta
	if err := json.Unmarshal(r.Meta, &m); err != nil {
		return nil, validator.Report{}, fmt.Errorf("repository: decode schedule meta: %w", err)
	}
	return m.Schedule, m.Report, nil
}

// ScheduleRepository persists versioned schedule runs in Postgres.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs a repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// CreateVersioned inserts a schedule record, assigning it the next
// version number for its term.
func (r *ScheduleRepository) CreateVersioned(ctx context.Context, exec sqlx.ExtContext, record *ScheduleRecord) error {
	if record == nil {
		return fmt.Errorf("repository: schedule record is nil")
	}
	if record.Term == "" {
		return fmt.Errorf("repository: term is required")
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if len(record.Meta) == 0 {
		record.Meta = types.JSONText(`{}`)
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	target := r.exec(exec)

	const nextVersionQuery = `SELECT COALESCE(MAX(version), 0) + 1 FROM schedule_runs WHERE term = $1`
	if err := sqlx.GetContext(ctx, target, &record.Version, nextVersionQuery, record.Term); err != nil {
		return fmt.Errorf("repository: compute next schedule version: %w", err)
	}

	const insertQuery = `
INSERT INTO schedule_runs (id, term, version, score, meta, created_at, updated_at)
VALUES (:id, :term, :version, :score, :meta, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, target, insertQuery, record); err != nil {
		return fmt.Errorf("repository: insert schedule run: %w", err)
	}
	return nil
}

// LatestByTerm returns the highest-version record for a term, or
// sql.ErrNoRows if none exists.
func (r *ScheduleRepository) LatestByTerm(ctx context.Context, term string) (*ScheduleRecord, error) {
	const query = `SELECT id, term, version, score, meta, created_at, updated_at
FROM schedule_runs WHERE term = $1 ORDER BY version DESC LIMIT 1`
	var record ScheduleRecord
	if err := r.db.GetContext(ctx, &record, query, term); err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByTerm returns every version stored for a term, newest first.
func (r *ScheduleRepository) ListByTerm(ctx context.Context, term string) ([]ScheduleRecord, error) {
	const query = `SELECT id, term, version, score, meta, created_at, updated_at
FROM schedule_runs WHERE term = $1 ORDER BY version DESC`
	var records []ScheduleRecord
	if err := r.db.SelectContext(ctx, &records, query, term); err != nil {
		return nil, fmt.Errorf("repository: list schedule runs: %w", err)
	}
	return records, nil
}

// Delete removes a stored schedule run by id.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM schedule_runs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: delete schedule run: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository: schedule run rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
