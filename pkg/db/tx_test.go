package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunner(t *testing.T) (*TxRunner, sqlmock.Sqlmock) {
	t.Helper()
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	t.Cleanup(func() { assert.NoError(t, mock.ExpectationsWereMet()) })
	return NewTxRunner(database), mock
}

func TestWithTx_Commit(t *testing.T) {
	runner, mock := newRunner(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM contracts").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := runner.WithTx(context.Background(), func(tx DBTX) error {
		_, err := tx.ExecContext(context.Background(), "DELETE FROM contracts WHERE id = ?", 1)
		return err
	})
	assert.NoError(t, err)
}

func TestWithTx_RollbackKeepsOriginalError(t *testing.T) {
	runner, mock := newRunner(t)
	sentinel := errors.New("ownership check failed")
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := runner.WithTx(context.Background(), func(DBTX) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
}

func TestWithTx_RollbackFailureWrapsOriginalError(t *testing.T) {
	runner, mock := newRunner(t)
	sentinel := errors.New("write failed")
	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("connection lost"))

	err := runner.WithTx(context.Background(), func(DBTX) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "rollback failed")
}

func TestWithTxResult(t *testing.T) {
	runner, mock := newRunner(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectCommit()

	n, err := WithTxResult(context.Background(), runner, func(tx DBTX) (int, error) {
		var n int
		err := tx.QueryRowContext(context.Background(), "SELECT 1").Scan(&n)
		return n, err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestWithTx_BeginAndCommitErrors(t *testing.T) {
	runner, mock := newRunner(t)
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))
	err := runner.WithTx(context.Background(), func(DBTX) error { return nil })
	assert.ErrorContains(t, err, "begin transaction")

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("deadlock"))
	err = runner.WithTx(context.Background(), func(DBTX) error { return nil })
	assert.ErrorContains(t, err, "commit transaction")
}

func TestIsDeadlock(t *testing.T) {
	deadlock := &mysql.MySQLError{Number: ErrNumLockDeadlock, Message: "Deadlock found when trying to get lock"}
	assert.True(t, IsDeadlock(deadlock))
	assert.True(t, IsDeadlock(fmt.Errorf("upsert: %w", deadlock)))
	assert.False(t, IsDeadlock(&mysql.MySQLError{Number: 1062}))
	assert.False(t, IsDeadlock(errors.New("deadlock")))
}

func TestConfigDSN(t *testing.T) {
	dsn := Config{Host: "db", Port: 3307, User: "u", Password: "p@ss", Name: "carbon"}.DSN()

	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "db:3307", cfg.Addr)
	assert.Equal(t, "p@ss", cfg.Passwd)
	assert.Equal(t, "carbon", cfg.DBName)
	assert.True(t, cfg.ParseTime)
}
