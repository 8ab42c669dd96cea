package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"medsimplify/pkg"
)

// ErrNotFound is returned when a history entry does not exist.
var ErrNotFound = errors.New("history entry not found")

const entryColumns = `id, created_at, strategy, audience, model, temperature,
	original_note, simplified_note,
	readability_score, original_readability, term_density, original_term_density,
	length_ratio, original_word_count, simplified_word_count, processing_time,
	lexicon_version`

// Repository is the Postgres-backed history of simplifications.  Entries are
// only ever appended.
type Repository struct {
	DB *sql.DB
	// Notifier is optional; when set every appended entry is announced on its
	// channel.  Notification failures are logged and do not fail Append.
	Notifier *Notifier
}

// NewRepository constructs a new Repository from an existing sql.DB.
// The caller is responsible for managing the DB connection lifecycle.
func NewRepository(db *sql.DB, notifier *Notifier) *Repository {
	return &Repository{DB: db, Notifier: notifier}
}

// Append stores e.  A zero ID or timestamp is filled in before the insert.
func (r *Repository) Append(ctx context.Context, e *pkg.HistoryEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	m := e.Metrics
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO simplifications (`+entryColumns+`)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		e.ID, e.CreatedAt, string(e.Strategy), string(e.Audience), e.Model, e.Temperature,
		e.OriginalNote, e.SimplifiedNote,
		m.ReadabilityScore, m.OriginalReadability, m.TermDensity, m.OriginalTermDensity,
		m.LengthRatio, m.OriginalWordCount, m.SimplifiedWordCount, m.ProcessingTime,
		m.LexiconVersion,
	)
	if err != nil {
		return fmt.Errorf("insert simplification: %w", err)
	}
	// The row is already stored; a failed notification is only logged.
	if r.Notifier != nil {
		if err := r.Notifier.Notify(ctx, e.ID.String()); err != nil {
			r.Notifier.Logger.Warn().Err(err).Str("id", e.ID.String()).Msg("failed to notify simplification")
		}
	}
	return nil
}

// Get retrieves a single entry by ID.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*pkg.HistoryEntry, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+entryColumns+`
         FROM simplifications
         WHERE id = $1`, id)
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// List returns entries newest first.  A limit of zero or less returns every
// entry from offset on.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]pkg.HistoryEntry, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = r.DB.QueryContext(ctx,
			`SELECT `+entryColumns+`
             FROM simplifications
             ORDER BY created_at DESC
             LIMIT $1 OFFSET $2`, limit, offset)
	} else {
		rows, err = r.DB.QueryContext(ctx,
			`SELECT `+entryColumns+`
             FROM simplifications
             ORDER BY created_at DESC
             OFFSET $1`, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []pkg.HistoryEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Count returns the number of stored entries.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM simplifications`).Scan(&count)
	return count, err
}

// SummaryByStrategy averages the stored metrics per strategy.
func (r *Repository) SummaryByStrategy(ctx context.Context) ([]pkg.MethodSummary, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT strategy, COUNT(*), AVG(readability_score), AVG(term_density), AVG(processing_time)
         FROM simplifications
         GROUP BY strategy
         ORDER BY strategy`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []pkg.MethodSummary
	for rows.Next() {
		var s pkg.MethodSummary
		if err := rows.Scan(&s.Strategy, &s.Count, &s.AvgReadability, &s.AvgTermDensity, &s.AvgProcessingTime); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*pkg.HistoryEntry, error) {
	var e pkg.HistoryEntry
	m := &e.Metrics
	err := s.Scan(
		&e.ID, &e.CreatedAt, &e.Strategy, &e.Audience, &e.Model, &e.Temperature,
		&e.OriginalNote, &e.SimplifiedNote,
		&m.ReadabilityScore, &m.OriginalReadability, &m.TermDensity, &m.OriginalTermDensity,
		&m.LengthRatio, &m.OriginalWordCount, &m.SimplifiedWordCount, &m.ProcessingTime,
		&m.LexiconVersion,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
