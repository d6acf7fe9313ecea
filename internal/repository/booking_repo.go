package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"

	"autocare/internal/db"
)

const bookingColumns = `id, code, owner_id, vehicle_id, appointment_date, appointment_time, status, total_price_cents, notes, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }, b *db.Booking) error {
	var notes sql.NullString
	var status string
	err := row.Scan(&b.ID, &b.Code, &b.OwnerID, &b.VehicleID, &b.AppointmentDate, &b.AppointmentTime,
		&status, &b.TotalPriceCents, &notes, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return err
	}
	b.Status = db.BookingStatus(status)
	b.Notes = notes.String
	return nil
}

// CreateBooking writes the booking header and its line items as one
// transaction. A failure on any line item rolls back the header, so a
// booking never exists without its services.
func (s *PostgresStore) CreateBooking(ctx context.Context, b *db.Booking) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting booking transaction: %w", translateErr(err))
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			log.Printf("Error rolling back booking transaction: %v", err)
		}
	}()

	headerQuery := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = tx.ExecContext(ctx, headerQuery,
		b.ID, b.Code, b.OwnerID, b.VehicleID, b.AppointmentDate, b.AppointmentTime,
		string(b.Status), b.TotalPriceCents, nullString(b.Notes), b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting booking: %w", translateErr(err))
	}

	itemQuery := `
		INSERT INTO booking_services (id, booking_id, service_id, price_cents)
		VALUES ($1, $2, $3, $4)`
	for _, item := range b.Services {
		if _, err := tx.ExecContext(ctx, itemQuery, item.ID, b.ID, item.ServiceID, item.PriceCents); err != nil {
			return fmt.Errorf("error inserting booking service: %w", translateErr(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing booking: %w", translateErr(err))
	}
	return nil
}

func (s *PostgresStore) ListBookingsByOwner(ctx context.Context, ownerID string) ([]db.Booking, error) {
	query := `
		SELECT ` + prefixColumns("b", bookingColumns) + `, ` + prefixColumns("v", vehicleColumns) + `
		FROM bookings b
		JOIN vehicles v ON v.id = b.vehicle_id
		WHERE b.owner_id = $1
		ORDER BY b.appointment_date DESC, b.appointment_time DESC`

	rows, err := s.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", translateErr(err))
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		var b db.Booking
		var v db.Vehicle
		var notes, color sql.NullString
		var status string
		err := rows.Scan(&b.ID, &b.Code, &b.OwnerID, &b.VehicleID, &b.AppointmentDate, &b.AppointmentTime,
			&status, &b.TotalPriceCents, &notes, &b.CreatedAt, &b.UpdatedAt,
			&v.ID, &v.OwnerID, &v.Make, &v.Model, &v.Year, &v.LicensePlate, &color, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		b.Status = db.BookingStatus(status)
		b.Notes = notes.String
		v.Color = color.String
		b.Vehicle = &v
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating bookings: %w", translateErr(err))
	}

	if err := s.attachBookingServices(ctx, bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *PostgresStore) GetBookingByID(ctx context.Context, id string) (*db.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var b db.Booking
	if err := scanBooking(s.DB.QueryRowContext(ctx, query, id), &b); err != nil {
		return nil, translateErr(err)
	}

	vehicle, err := s.GetVehicleByID(ctx, b.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("error loading booking vehicle: %w", err)
	}
	b.Vehicle = vehicle

	bookings := []db.Booking{b}
	if err := s.attachBookingServices(ctx, bookings); err != nil {
		return nil, err
	}
	return &bookings[0], nil
}

func (s *PostgresStore) UpdateBookingStatus(ctx context.Context, id string, status db.BookingStatus, updatedAt time.Time) error {
	query := `UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, string(status), updatedAt, id)
	if err != nil {
		return fmt.Errorf("error updating booking status: %w", translateErr(err))
	}
	return requireRow(result)
}

// attachBookingServices loads the priced line items, with their catalog
// services, for every booking in the slice.
func (s *PostgresStore) attachBookingServices(ctx context.Context, bookings []db.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	ids := make([]string, 0, len(bookings))
	index := make(map[string]*db.Booking, len(bookings))
	for i := range bookings {
		ids = append(ids, bookings[i].ID)
		index[bookings[i].ID] = &bookings[i]
	}

	query := `
		SELECT bs.id, bs.booking_id, bs.service_id, bs.price_cents, ` + prefixColumns("s", serviceColumns) + `
		FROM booking_services bs
		JOIN services s ON s.id = bs.service_id
		WHERE bs.booking_id = ANY($1)
		ORDER BY bs.booking_id, s.name`

	rows, err := s.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error querying booking services: %w", translateErr(err))
	}
	defer rows.Close()

	for rows.Next() {
		var item db.BookingService
		var svc db.Service
		err := rows.Scan(&item.ID, &item.BookingID, &item.ServiceID, &item.PriceCents,
			&svc.ID, &svc.Name, &svc.Description, &svc.PriceCents, &svc.DurationMinutes, &svc.Category, &svc.Active, &svc.CreatedAt)
		if err != nil {
			return fmt.Errorf("error scanning booking service: %w", err)
		}
		item.Service = &svc
		if b, ok := index[item.BookingID]; ok {
			b.Services = append(b.Services, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error after iterating booking services: %w", translateErr(err))
	}
	return nil
}
