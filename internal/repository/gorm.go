package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "github.com/flamegraph-analysis/pkg/errors"
	"github.com/flamegraph-analysis/pkg/model"
)

// GormRunRepository implements RunRepository using GORM.
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a new GormRunRepository.
func NewGormRunRepository(db *gorm.DB) *GormRunRepository {
	return &GormRunRepository{db: db}
}

// SaveRun saves a completed analysis run with its ranked hotspots. The
// generated run ID is written back to the model.
func (r *GormRunRepository) SaveRun(ctx context.Context, run *model.AnalysisRun) error {
	row := rowFromModel(run)

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return apperrors.Wrap(apperrors.CodeDatabaseError, "failed to save run", err)
	}

	run.ID = row.ID
	run.CreatedAt = row.CreatedAt
	return nil
}

// GetRun retrieves one run with its hotspots.
func (r *GormRunRepository) GetRun(ctx context.Context, id int64) (*model.AnalysisRun, error) {
	var row AnalysisRunRow

	err := r.db.WithContext(ctx).
		Preload("Hotspots", func(db *gorm.DB) *gorm.DB {
			return db.Order("rank_no ASC")
		}).
		First(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("run not found: %d", id))
		}
		return nil, apperrors.Wrap(apperrors.CodeDatabaseError, "failed to get run", err)
	}

	return row.ToModel(), nil
}

// ListRuns retrieves the most recent runs, newest first.
func (r *GormRunRepository) ListRuns(ctx context.Context, limit int) ([]*model.AnalysisRun, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []AnalysisRunRow
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDatabaseError, "failed to list runs", err)
	}

	runs := make([]*model.AnalysisRun, len(rows))
	for i := range rows {
		runs[i] = rows[i].ToModel()
	}
	return runs, nil
}

// DeleteRun deletes a run and its hotspots.
func (r *GormRunRepository) DeleteRun(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("run_id = ?", id).Delete(&RunHotspotRow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&AnalysisRunRow{}, id).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.CodeDatabaseError, "failed to delete run", err)
	}
	return nil
}
