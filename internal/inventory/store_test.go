package inventory

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackedServers(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT DISTINCT ServerName FROM inventory").
		WillReturnRows(sqlmock.NewRows([]string{"ServerName"}).
			AddRow(" srsql01pro ").
			AddRow("SRSQL02PRE"))

	s := NewStore(db, "inventory")
	servers, err := s.TrackedServers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"SRSQL01PRO", "SRSQL02PRE"}, servers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOlapServers(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("WHERE InstanceType = 'OLAP'").
		WillReturnRows(sqlmock.NewRows([]string{"ServerName"}).AddRow("SROLAP01PRO"))

	s := NewStore(db, "inventory")
	servers, err := s.OlapServers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"SROLAP01PRO"}, servers)
}

func TestServerDetailsNullColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{
		"ServerName", "RespContact1", "Email1", "RespContact2", "Email2", "Env",
		"SQLVersion", "InstanceType", "Lstnr", "BackupRetDays", "ServiceDesk",
		"RelAppServ", "Comments", "Maintenance",
	}
	mock.ExpectQuery("SELECT DISTINCT").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("srsql01pro", "Jane Doe", "jane@example.com", nil, nil, "PRO",
				"SQL 2019", "SA", nil, "15.0", nil, nil, nil, nil))

	s := NewStore(db, "inventory")
	details, err := s.ServerDetails(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 1)

	d := details[0]
	assert.Equal(t, "SRSQL01PRO", d.ServerName)
	assert.Equal(t, "Jane Doe", d.RespContact1)
	assert.Equal(t, "", d.RespContact2) // NULL maps to empty string
	assert.Equal(t, "15.0", d.BackupRetDays)
}

func TestReload(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	statements := []string{
		"INSERT INTO inventory (ServerName) VALUES ('SRSQL01PRO');",
		"INSERT INTO inventory (ServerName) VALUES ('SRSQL02PRE');",
	}

	mock.ExpectBegin()
	mock.ExpectExec("TRUNCATE TABLE inventory").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO inventory").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO inventory").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := NewStore(db, "inventory")
	require.NoError(t, s.Reload(context.Background(), statements))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReloadInsertFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("TRUNCATE TABLE inventory").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO inventory").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	s := NewStore(db, "inventory")
	err = s.Reload(context.Background(), []string{"INSERT INTO inventory (ServerName) VALUES ('X');"})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
