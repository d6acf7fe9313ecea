package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autocare/internal/apperrors"
	"autocare/internal/db"
)

func testBooking() *db.Booking {
	now := time.Now().UTC()
	return &db.Booking{
		ID:              "booking-1",
		Code:            "00ABCDEF",
		OwnerID:         "user-1",
		VehicleID:       "vehicle-1",
		AppointmentDate: now.AddDate(0, 0, 1),
		AppointmentTime: "10:00",
		Status:          db.StatusPending,
		TotalPriceCents: 19999,
		CreatedAt:       now,
		UpdatedAt:       now,
		Services: []db.BookingService{
			{ID: "bs-1", BookingID: "booking-1", ServiceID: "service-1", PriceCents: 7999},
			{ID: "bs-2", BookingID: "booking-1", ServiceID: "service-2", PriceCents: 12000},
		},
	}
}

func TestCreateBookingCommitsHeaderAndItems(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()
	store := NewPostgresStore(database)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO booking_services").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO booking_services").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.CreateBooking(context.Background(), testBooking()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A line-item failure must roll the header back: no orphan booking row.
func TestCreateBookingRollsBackOnLineItemFailure(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()
	store := NewPostgresStore(database)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO booking_services").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err = store.CreateBooking(context.Background(), testBooking())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBookingStatusNotFound(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()
	store := NewPostgresStore(database)

	mock.ExpectExec("UPDATE bookings SET status").WillReturnResult(sqlmock.NewResult(0, 0))

	err = store.UpdateBookingStatus(context.Background(), "booking-404", db.StatusConfirmed, time.Now().UTC())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserNotFound(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()
	store := NewPostgresStore(database)

	mock.ExpectExec("UPDATE users SET name").WillReturnResult(sqlmock.NewResult(0, 0))

	err = store.UpdateUser(context.Background(), &db.User{ID: "user-404", Name: "Ghost"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetServiceByIDNotFound(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()
	store := NewPostgresStore(database)

	mock.ExpectQuery("SELECT (.+) FROM services").WillReturnError(sql.ErrNoRows)

	_, err = store.GetServiceByID(context.Background(), "service-404")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListActiveServicesScan(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()
	store := NewPostgresStore(database)

	rows := sqlmock.NewRows([]string{"id", "name", "description", "price_cents", "duration_minutes", "category", "active", "created_at"}).
		AddRow("service-1", "Oil Change", "Full synthetic oil change", int64(7999), 45, "basic", true, time.Now()).
		AddRow("service-2", "Brake Inspection", "Complete brake inspection", int64(12000), 60, "basic", true, time.Now())
	mock.ExpectQuery("SELECT (.+) FROM services WHERE active").WillReturnRows(rows)

	services, err := store.ListActiveServices(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, int64(7999), services[0].PriceCents)
	assert.Equal(t, db.CategoryBasic, services[0].Category)
}
