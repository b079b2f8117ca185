package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Run is one invocation of the perturbation CLI.
type Run struct {
	ID            string `gorm:"type:varchar(36);primaryKey"`
	Perturbation  string `gorm:"size:32;index;not null"`
	Strategy      string `gorm:"size:32;not null"`
	PerturbedFrac float64
	Seed          int64
	Examples      int
	Input         string
	Output        string
	StartedAt     time.Time `gorm:"index"`
	FinishedAt    time.Time
	// Error is empty for successful runs.
	Error string
}

// Duration reports how long the run took.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Logger defines the interface for logging operations in the database package.
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
}

// Ledger stores runs in any gorm dialect.
type Ledger struct {
	db     *gorm.DB
	logger Logger
}

// NewLedger wraps an open connection.
func NewLedger(db *gorm.DB, logger Logger) *Ledger {
	return &Ledger{db: db, logger: logger}
}

// Migrate creates or updates the ledger tables.
func (l *Ledger) Migrate() error {
	return l.db.AutoMigrate(&Run{})
}

// HasRunsTable reports whether the runs table exists.
func (l *Ledger) HasRunsTable() bool {
	return l.db.Migrator().HasTable(&Run{})
}

// RecordRun inserts a run, assigning an ID when it has none.
func (l *Ledger) RecordRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if err := l.db.WithContext(ctx).Create(run).Error; err != nil {
		return TranslateError(err)
	}

	l.logger.Debug("recorded run", nil, map[string]interface{}{
		"id":           run.ID,
		"perturbation": run.Perturbation,
		"examples":     run.Examples,
	})
	return nil
}

// GetRun loads a run by ID.
func (l *Ledger) GetRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	if err := l.db.WithContext(ctx).First(&run, "id = ?", id).Error; err != nil {
		return nil, TranslateError(err)
	}
	return &run, nil
}

// ListRuns returns the most recent runs first. A limit of zero or less returns all runs.
func (l *Ledger) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	q := l.db.WithContext(ctx).Order("started_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var runs []Run
	if err := q.Find(&runs).Error; err != nil {
		return nil, TranslateError(err)
	}
	return runs, nil
}
