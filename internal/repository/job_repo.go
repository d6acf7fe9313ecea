package repository

import (
	"context"
	"fmt"
	"time"

	"autocare/internal/db"
)

// ConfirmedBookingsOn returns confirmed bookings scheduled on the given
// calendar date, vehicle populated, for the reminder sweep.
func (s *PostgresStore) ConfirmedBookingsOn(ctx context.Context, date time.Time) ([]db.Booking, error) {
	query := `
		SELECT ` + prefixColumns("b", bookingColumns) + `
		FROM bookings b
		WHERE b.status = $1 AND b.appointment_date = $2
		ORDER BY b.appointment_time`

	rows, err := s.DB.QueryContext(ctx, query, string(db.StatusConfirmed), date)
	if err != nil {
		return nil, fmt.Errorf("error querying confirmed bookings: %w", translateErr(err))
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		var b db.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, fmt.Errorf("error scanning confirmed booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating confirmed bookings: %w", translateErr(err))
	}

	for i := range bookings {
		vehicle, err := s.GetVehicleByID(ctx, bookings[i].VehicleID)
		if err != nil {
			return nil, fmt.Errorf("error loading vehicle for reminder: %w", err)
		}
		bookings[i].Vehicle = vehicle
	}
	return bookings, nil
}
