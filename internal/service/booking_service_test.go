package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autocare/internal/apperrors"
	"autocare/internal/db"
	"autocare/internal/repository"
)

func tomorrow() string {
	return time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
}

func newBookingService() (*BookingService, *repository.FixtureStore) {
	store := repository.NewFixtureStore()
	return NewBookingService(store, nil), store
}

func TestCreateBookingPricesAndSnapshots(t *testing.T) {
	svc, _ := newBookingService()
	ctx := context.Background()

	booking, err := svc.Create(ctx, CreateBookingInput{
		OwnerID:         "user-1",
		VehicleID:       "vehicle-1",
		AppointmentDate: tomorrow(),
		AppointmentTime: "10:00",
		ServiceIDs:      []string{"service-1", "service-2"}, // 79.99 + 120.00
		Notes:           "please check the brakes too",
	})
	require.NoError(t, err)

	assert.Equal(t, db.StatusPending, booking.Status)
	assert.Equal(t, int64(19999), booking.TotalPriceCents)
	require.Len(t, booking.Services, 2)
	assert.Equal(t, int64(7999), booking.Services[0].PriceCents)
	assert.Equal(t, int64(12000), booking.Services[1].PriceCents)
	assert.NotEmpty(t, booking.ID)
	assert.Len(t, booking.Code, 8)
}

func TestCreateBookingEmptyServiceSelection(t *testing.T) {
	svc, _ := newBookingService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateBookingInput{
		OwnerID:         "user-1",
		VehicleID:       "vehicle-1",
		AppointmentDate: tomorrow(),
		AppointmentTime: "10:00",
		ServiceIDs:      nil,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// No booking row was created.
	bookings, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestCreateBookingUnknownService(t *testing.T) {
	svc, _ := newBookingService()

	_, err := svc.Create(context.Background(), CreateBookingInput{
		OwnerID:         "user-1",
		VehicleID:       "vehicle-1",
		AppointmentDate: tomorrow(),
		AppointmentTime: "10:00",
		ServiceIDs:      []string{"service-1", "service-999"},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateBookingVehicleOwnershipMismatch(t *testing.T) {
	svc, store := newBookingService()
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, store.CreateUser(ctx, &db.User{ID: "user-2", Name: "Jane Roe", Email: "jane.roe@example.com", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, store.CreateVehicle(ctx, &db.Vehicle{ID: "vehicle-3", OwnerID: "user-2", Make: "Ford", Model: "Focus", Year: 2018, LicensePlate: "JJJ-111", CreatedAt: now, UpdatedAt: now}))

	_, err := svc.Create(ctx, CreateBookingInput{
		OwnerID:         "user-1",
		VehicleID:       "vehicle-3",
		AppointmentDate: tomorrow(),
		AppointmentTime: "10:00",
		ServiceIDs:      []string{"service-1"},
	})
	assert.ErrorIs(t, err, apperrors.ErrOwnershipMismatch)

	bookings, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestCreateBookingPastDate(t *testing.T) {
	svc, _ := newBookingService()

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	_, err := svc.Create(context.Background(), CreateBookingInput{
		OwnerID:         "user-1",
		VehicleID:       "vehicle-1",
		AppointmentDate: yesterday,
		AppointmentTime: "10:00",
		ServiceIDs:      []string{"service-1"},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateBookingOffGridTime(t *testing.T) {
	svc, _ := newBookingService()

	_, err := svc.Create(context.Background(), CreateBookingInput{
		OwnerID:         "user-1",
		VehicleID:       "vehicle-1",
		AppointmentDate: tomorrow(),
		AppointmentTime: "10:15",
		ServiceIDs:      []string{"service-1"},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBookingTotalSurvivesCatalogPriceChange(t *testing.T) {
	svc, store := newBookingService()
	ctx := context.Background()

	booking, err := svc.Create(ctx, CreateBookingInput{
		OwnerID:         "user-1",
		VehicleID:       "vehicle-1",
		AppointmentDate: tomorrow(),
		AppointmentTime: "09:30",
		ServiceIDs:      []string{"service-1", "service-2"},
	})
	require.NoError(t, err)
	require.Equal(t, int64(19999), booking.TotalPriceCents)

	require.NoError(t, store.SetServicePrice("service-1", 99999))

	bookings, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, int64(19999), bookings[0].TotalPriceCents)
	for _, item := range bookings[0].Services {
		if item.ServiceID == "service-1" {
			assert.Equal(t, int64(7999), item.PriceCents)
		}
	}
}

func TestListBookingsOrdering(t *testing.T) {
	svc, _ := newBookingService()
	ctx := context.Background()

	later := time.Now().UTC().AddDate(0, 0, 3).Format("2006-01-02")
	first, err := svc.Create(ctx, CreateBookingInput{
		OwnerID: "user-1", VehicleID: "vehicle-1",
		AppointmentDate: tomorrow(), AppointmentTime: "10:00",
		ServiceIDs: []string{"service-1"},
	})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateBookingInput{
		OwnerID: "user-1", VehicleID: "vehicle-2",
		AppointmentDate: later, AppointmentTime: "09:00",
		ServiceIDs: []string{"service-3"},
	})
	require.NoError(t, err)
	third, err := svc.Create(ctx, CreateBookingInput{
		OwnerID: "user-1", VehicleID: "vehicle-1",
		AppointmentDate: tomorrow(), AppointmentTime: "14:30",
		ServiceIDs: []string{"service-2"},
	})
	require.NoError(t, err)

	bookings, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, bookings, 3)

	// Newest appointment first; same date ordered by time descending.
	assert.Equal(t, second.ID, bookings[0].ID)
	assert.Equal(t, third.ID, bookings[1].ID)
	assert.Equal(t, first.ID, bookings[2].ID)
	require.NotNil(t, bookings[0].Vehicle)
	assert.Equal(t, "vehicle-2", bookings[0].Vehicle.ID)
}

func TestUpdateStatusFollowsStateMachine(t *testing.T) {
	svc, _ := newBookingService()
	ctx := context.Background()

	booking, err := svc.Create(ctx, CreateBookingInput{
		OwnerID: "user-1", VehicleID: "vehicle-1",
		AppointmentDate: tomorrow(), AppointmentTime: "10:00",
		ServiceIDs: []string{"service-1"},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, booking.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, db.StatusConfirmed, updated.Status)

	// confirmed -> completed skips in-progress.
	_, err = svc.UpdateStatus(ctx, booking.ID, "completed")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	updated, err = svc.UpdateStatus(ctx, booking.ID, "in-progress")
	require.NoError(t, err)
	updated, err = svc.UpdateStatus(ctx, booking.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, db.StatusCompleted, updated.Status)

	// Terminal: nothing moves out of completed.
	_, err = svc.UpdateStatus(ctx, booking.ID, "cancelled")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestCancelBooking(t *testing.T) {
	svc, _ := newBookingService()
	ctx := context.Background()

	booking, err := svc.Create(ctx, CreateBookingInput{
		OwnerID: "user-1", VehicleID: "vehicle-1",
		AppointmentDate: tomorrow(), AppointmentTime: "10:00",
		ServiceIDs: []string{"service-1"},
	})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, "user-1", booking.ID)
	require.NoError(t, err)
	assert.Equal(t, db.StatusCancelled, cancelled.Status)

	// cancelled is terminal.
	_, err = svc.UpdateStatus(ctx, booking.ID, "confirmed")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestCancelBookingByNonOwner(t *testing.T) {
	svc, store := newBookingService()
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, store.CreateUser(ctx, &db.User{ID: "user-2", Name: "Jane Roe", Email: "jane.roe@example.com", CreatedAt: now, UpdatedAt: now}))

	booking, err := svc.Create(ctx, CreateBookingInput{
		OwnerID: "user-1", VehicleID: "vehicle-1",
		AppointmentDate: tomorrow(), AppointmentTime: "10:00",
		ServiceIDs: []string{"service-1"},
	})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, "user-2", booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrOwnershipMismatch)
}

func TestUpdateStatusUnknownBooking(t *testing.T) {
	svc, _ := newBookingService()

	_, err := svc.UpdateStatus(context.Background(), "no-such-booking", "confirmed")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.UpdateStatus(context.Background(), "no-such-booking", "weird")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
