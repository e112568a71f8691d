package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockSequenceRepository(t *testing.T) (*GormSequenceRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSequenceRepository(gormDB), mock, mockDB
}

func TestGormSequenceRepository_NextNumber(t *testing.T) {
	t.Run("first number in a fresh scope is 1", func(t *testing.T) {
		repo, mock, mockDB := newMockSequenceRepository(t)
		defer mockDB.Close()

		departmentID := uuid.New()
		mock.ExpectQuery(`INSERT INTO document_sequences`).
			WithArgs("PZ", departmentID, 2024).
			WillReturnRows(sqlmock.NewRows([]string{"last_number"}).AddRow(1))

		number, err := repo.NextNumber(context.Background(), "PZ", departmentID, 2024)
		require.NoError(t, err)
		assert.Equal(t, 1, number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing scope increments the counter", func(t *testing.T) {
		repo, mock, mockDB := newMockSequenceRepository(t)
		defer mockDB.Close()

		departmentID := uuid.New()
		mock.ExpectQuery(`ON CONFLICT \(type_symbol, department_id, year\)`).
			WithArgs("PZ", departmentID, 2024).
			WillReturnRows(sqlmock.NewRows([]string{"last_number"}).AddRow(8))

		number, err := repo.NextNumber(context.Background(), "PZ", departmentID, 2024)
		require.NoError(t, err)
		assert.Equal(t, 8, number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates database errors", func(t *testing.T) {
		repo, mock, mockDB := newMockSequenceRepository(t)
		defer mockDB.Close()

		departmentID := uuid.New()
		mock.ExpectQuery(`INSERT INTO document_sequences`).
			WithArgs("FV", departmentID, 2024).
			WillReturnError(sql.ErrConnDone)

		_, err := repo.NextNumber(context.Background(), "FV", departmentID, 2024)
		assert.Error(t, err)
	})
}
