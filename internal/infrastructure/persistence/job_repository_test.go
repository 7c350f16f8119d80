package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/localization"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func persistedJob(t *testing.T) *localization.LocalizationJob {
	t.Helper()
	job, err := localization.NewLocalizationJob(
		"translate en_us to fr_fr",
		localization.JobTypeTranslation,
		uuid.New(), uuid.New(), uuid.New(),
		"en_US", "fr_FR", "merchandiser",
		localization.JobConfig{},
	)
	require.NoError(t, err)
	job.ClearDomainEvents()
	return job
}

func TestGormJobRepository_FindByID(t *testing.T) {
	t.Run("returns not found for unknown job", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormJobRepository(db)

		jobID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "localization_jobs" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(jobID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		job, err := repo.FindByID(context.Background(), jobID)

		assert.Nil(t, job)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormJobRepository_ExistsActive(t *testing.T) {
	t.Run("reports active duplicate", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormJobRepository(db)

		catalogProductID := uuid.New()
		rows := sqlmock.NewRows([]string{"count"}).AddRow(1)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "localization_jobs" WHERE .*`).
			WillReturnRows(rows)

		exists, err := repo.ExistsActive(context.Background(), catalogProductID, "fr_FR", localization.JobTypeTranslation)

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports no duplicate when count is zero", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormJobRepository(db)

		rows := sqlmock.NewRows([]string{"count"}).AddRow(0)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "localization_jobs" WHERE .*`).
			WillReturnRows(rows)

		exists, err := repo.ExistsActive(context.Background(), uuid.New(), "de_DE", localization.JobTypeCurrencyConversion)

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormJobRepository_SaveWithVersion(t *testing.T) {
	t.Run("persists when stored version matches", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormJobRepository(db)

		job := persistedJob(t)
		loadedVersion := job.GetVersion()
		require.NoError(t, job.Claim("worker-1"))

		mock.ExpectExec(`UPDATE "localization_jobs" SET .* WHERE id = .* AND version = .*`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithVersion(context.Background(), job, loadedVersion)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns concurrency conflict when version is stale", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormJobRepository(db)

		job := persistedJob(t)
		loadedVersion := job.GetVersion()
		require.NoError(t, job.Claim("worker-1"))

		mock.ExpectExec(`UPDATE "localization_jobs" SET .* WHERE id = .* AND version = .*`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithVersion(context.Background(), job, loadedVersion)

		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
