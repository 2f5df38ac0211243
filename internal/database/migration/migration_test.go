package migration

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyhub/internal/logging"
)

var sentinelQuery = regexp.QuoteMeta("SELECT to_regclass('public.study_streaks') IS NOT NULL")

func TestEnsureMigrated_SkipsWhenSchemaExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(sentinelQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err = EnsureMigrated(context.Background(), db, logging.Discard(), "localhost")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureMigrated_AppliesAllSteps(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(sentinelQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	for _, step := range steps {
		mock.ExpectExec(regexp.QuoteMeta(step.SQL)).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	err = EnsureMigrated(context.Background(), db, logging.Discard(), "localhost")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureMigrated_StepFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(sentinelQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta(steps[0].SQL)).WillReturnError(errors.New("boom"))

	err = EnsureMigrated(context.Background(), db, logging.Discard(), "localhost")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migration step create_table_uploads failed: boom")
}

func TestEnsureMigrated_SentinelFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(sentinelQuery).WillReturnError(errors.New("conn refused"))

	err = EnsureMigrated(context.Background(), db, logging.Discard(), "localhost")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to check sentinel table")
}

func TestSteps_UploadCatalogColumns(t *testing.T) {
	var uploads, index string
	for _, step := range steps {
		switch step.Name {
		case "create_table_uploads":
			uploads = step.SQL
		case "create_index_uploads_subject_grade":
			index = step.SQL
		}
	}

	require.NotEmpty(t, uploads)
	assert.Contains(t, uploads, "title             VARCHAR(255)")
	assert.Contains(t, uploads, "'Math', 'English', 'Science', 'History', 'Computer'")
	assert.Contains(t, uploads, "'Grade9', 'Grade10', 'Grade11', 'Grade12'")
	assert.Contains(t, index, "ON uploads (subject, grade)")
}
