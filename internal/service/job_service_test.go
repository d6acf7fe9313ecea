package service

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autocare/internal/db"
	"autocare/internal/repository"
)

// utcMidnight matches a bound time.Time at exactly 00:00:00 UTC. Appointment
// dates are stored that way, so any other clock reading matches no rows in
// the appointment_date equality.
type utcMidnight struct{}

func (utcMidnight) Match(v driver.Value) bool {
	ts, ok := v.(time.Time)
	if !ok {
		return false
	}
	ts = ts.UTC()
	return ts.Hour() == 0 && ts.Minute() == 0 && ts.Second() == 0 && ts.Nanosecond() == 0
}

func TestReminderSweepQueriesByCalendarDate(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	mock.ExpectQuery("SELECT (.+) FROM bookings b").
		WithArgs(string(db.StatusConfirmed), utcMidnight{}).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	jobs := NewJobService(repository.NewPostgresStore(database), nil)
	require.NoError(t, jobs.SendAppointmentReminders(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
