package scheduler

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/haien/ccs/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, mock
}

func newExpiryJob(db *gorm.DB) *ValidationExpiryJob {
	return NewValidationExpiryJob(db, &config.Config{
		Task: config.TaskConfig{Interval: 3600},
	})
}

func TestValidationExpiryJobName(t *testing.T) {
	job := newExpiryJob(nil)
	assert.Equal(t, "validation_window_expirer", job.GetName())
}

func TestValidationExpiryJobExpiresOverdueRecords(t *testing.T) {
	db, mock := newMockDB(t)
	job := newExpiryJob(db)

	overdue := time.Now().AddDate(0, 0, -120)
	rows := sqlmock.NewRows([]string{"id", "volunteer_id", "activity_date", "hours", "validation_status", "validation_request_id"}).
		AddRow(1, "user-1", overdue, 4.0, "pending", 9).
		AddRow(2, "user-2", overdue, 2.0, "unvalidated", nil)
	mock.ExpectQuery(`SELECT \* FROM "self_reported_hours"`).WillReturnRows(rows)

	// 验证中的记录：过期、清空请求指针，并关闭打开的请求
	mock.ExpectExec(`UPDATE "self_reported_hours"`).
		WithArgs(nil, "expired", sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "validation_request"`).
		WithArgs("expired", sqlmock.AnyArg(), int64(1), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))

	// 未验证的记录：只标记过期
	mock.ExpectExec(`UPDATE "self_reported_hours"`).
		WithArgs(nil, "expired", sqlmock.AnyArg(), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	job.Execute()
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestValidationExpiryJobNothingOverdue(t *testing.T) {
	db, mock := newMockDB(t)
	job := newExpiryJob(db)

	mock.ExpectQuery(`SELECT \* FROM "self_reported_hours"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	job.Execute()
	require.NoError(t, mock.ExpectationsWereMet())
}
