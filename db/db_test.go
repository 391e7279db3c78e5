package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyverse/server/logging"
)

func TestLogAndQueryShouldReturnResults(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"date", "word_count"}).
		AddRow("2024-01-01", 120).
		AddRow("2024-01-02", 450)

	mock.ExpectQuery("SELECT date, word_count FROM writing_activity").WillReturnRows(rows)

	res, err := LogAndQuery(context.Background(), logging.Discard(), db, "SELECT date, word_count FROM writing_activity")
	require.NoError(t, err)
	defer res.Close()

	var dates []string
	for res.Next() {
		var date string
		var words int
		require.NoError(t, res.Scan(&date, &words))
		dates = append(dates, date)
	}
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, dates)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestLogAndQueryWrapsErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery("SELECT 1").WillReturnError(boom)

	res, err := LogAndQuery(context.Background(), logging.Discard(), db, "SELECT 1")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, boom)
}

func TestLogAndQueryRowShouldReturnResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"word_count"}).AddRow(300)
	mock.ExpectQuery("SELECT word_count FROM writing_activity WHERE user_id = \\$1").
		WithArgs("u1").
		WillReturnRows(rows)

	var words int
	err = LogAndQueryRow(context.Background(), logging.Discard(), db, "SELECT word_count FROM writing_activity WHERE user_id = $1", "u1").Scan(&words)
	require.NoError(t, err)
	assert.Equal(t, 300, words)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestLogAndExec(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE writing_activity").WillReturnResult(sqlmock.NewResult(0, 1))
	res, err := LogAndExec(context.Background(), logging.Discard(), db, "UPDATE writing_activity SET word_count = 1")
	require.NoError(t, err)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	mock.ExpectExec("DELETE").WillReturnError(errors.New("denied"))
	_, err = LogAndExec(context.Background(), logging.Discard(), db, "DELETE FROM writing_activity")
	assert.EqualError(t, err, "exec: denied")

	require.NoError(t, mock.ExpectationsWereMet())
}
