// Package repository persists analysis run history so past reports can be
// listed and compared without re-parsing the original documents.
package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/flamegraph-analysis/pkg/model"
)

// RunRepository defines the interface for run history operations.
type RunRepository interface {
	// SaveRun saves a completed analysis run with its ranked hotspots.
	SaveRun(ctx context.Context, run *model.AnalysisRun) error

	// GetRun retrieves one run with its hotspots.
	GetRun(ctx context.Context, id int64) (*model.AnalysisRun, error)

	// ListRuns retrieves the most recent runs, newest first, without
	// their hotspot details.
	ListRuns(ctx context.Context, limit int) ([]*model.AnalysisRun, error)

	// DeleteRun deletes a run and its hotspots.
	DeleteRun(ctx context.Context, id int64) error
}

// Repositories holds the repository instances and owns the connection.
type Repositories struct {
	Runs RunRepository

	gormDB *gorm.DB
}

// NewRepositories creates all repositories using GORM.
func NewRepositories(gormDB *gorm.DB) *Repositories {
	return &Repositories{
		Runs:   NewGormRunRepository(gormDB),
		gormDB: gormDB,
	}
}

// Close closes the database connection.
func (r *Repositories) Close() error {
	if r.gormDB == nil {
		return nil
	}
	sqlDB, err := r.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is still alive.
func (r *Repositories) HealthCheck(ctx context.Context) error {
	sqlDB, err := r.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// DB returns the underlying sql.DB connection.
func (r *Repositories) DB() *sql.DB {
	sqlDB, _ := r.gormDB.DB()
	return sqlDB
}

// GormDB returns the underlying GORM DB instance.
func (r *Repositories) GormDB() *gorm.DB {
	return r.gormDB
}
