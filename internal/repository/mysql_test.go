package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gdb, mock
}

func TestGormRunRepository_ListRuns_SQL(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewGormRunRepository(gdb)

	columns := []string{"id", "report_path", "pool_size", "total_samples", "relevant_samples", "fallback", "created_at"}
	mock.ExpectQuery("SELECT (.+) FROM `analysis_runs` ORDER BY id DESC").
		WillReturnRows(sqlmock.NewRows(columns))

	runs, err := repo.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRunRepository_DeleteRun_SQL(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewGormRunRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `run_hotspots`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `analysis_runs`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteRun(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}
