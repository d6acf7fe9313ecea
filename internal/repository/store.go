package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"autocare/internal/apperrors"
	"autocare/internal/db"
)

// Store is the persistence collaborator behind the services. Two
// implementations exist: PostgresStore (lib/pq) and FixtureStore
// (in-memory, seeded). The backend is selected once at startup and never
// mixed at runtime.
type Store interface {
	// Catalog (read-only after seed)
	ListActiveServices(ctx context.Context) ([]db.Service, error)
	GetServiceByID(ctx context.Context, id string) (*db.Service, error)
	GetServicesByIDs(ctx context.Context, ids []string) ([]db.Service, error)

	// Vehicles
	ListVehicles(ctx context.Context, ownerID string) ([]db.Vehicle, error)
	GetVehicleByID(ctx context.Context, id string) (*db.Vehicle, error)
	CreateVehicle(ctx context.Context, v *db.Vehicle) error
	UpdateVehicle(ctx context.Context, v *db.Vehicle) error
	DeleteVehicle(ctx context.Context, id string) error

	// Bookings
	CreateBooking(ctx context.Context, b *db.Booking) error
	ListBookingsByOwner(ctx context.Context, ownerID string) ([]db.Booking, error)
	GetBookingByID(ctx context.Context, id string) (*db.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status db.BookingStatus, updatedAt time.Time) error
	ConfirmedBookingsOn(ctx context.Context, date time.Time) ([]db.Booking, error)

	// Users
	CreateUser(ctx context.Context, u *db.User) error
	UpdateUser(ctx context.Context, u *db.User) error
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	GetUserByID(ctx context.Context, id string) (*db.User, error)
}

// PostgresStore implements Store over database/sql. Methods are grouped per
// concern in catalog_repo.go, vehicle_repo.go, booking_repo.go, user_repo.go
// and job_repo.go.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(database *sql.DB) *PostgresStore {
	return &PostgresStore{DB: database}
}

// prefixColumns qualifies a comma-separated column list with a table alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + p
	}
	return strings.Join(parts, ", ")
}

// translateErr maps driver-level failures onto the app error taxonomy so
// callers never see a generic store error for a constraint violation.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return apperrors.ErrDuplicateEmail
		case "23503", "23502", "23514": // fk / not-null / check violations
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, pqErr.Message)
		}
	}
	return err
}
