package db

import "time"

type ServiceCategory string

const (
	CategoryBasic    ServiceCategory = "basic"
	CategoryAdvanced ServiceCategory = "advanced"
	CategoryAccident ServiceCategory = "accident"
)

type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Vehicle struct {
	ID           string
	OwnerID      string
	Make         string
	Model        string
	Year         int
	LicensePlate string
	Color        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Service is a catalog entry. Read-only after seed; PriceCents is the
// price in minor currency units.
type Service struct {
	ID              string
	Name            string
	Description     string
	PriceCents      int64
	DurationMinutes int
	Category        ServiceCategory
	Active          bool
	CreatedAt       time.Time
}

// Booking is the appointment aggregate. AppointmentTime is "HH:MM" on a
// 30-minute grid; Vehicle and Services are populated on reads.
type Booking struct {
	ID              string
	Code            string
	OwnerID         string
	VehicleID       string
	AppointmentDate time.Time
	AppointmentTime string
	Status          BookingStatus
	TotalPriceCents int64
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Vehicle  *Vehicle
	Services []BookingService
}

// BookingService snapshots one catalog service into a booking. PriceCents
// is copied at creation time, so later catalog price changes never touch
// an existing booking.
type BookingService struct {
	ID         string
	BookingID  string
	ServiceID  string
	PriceCents int64

	Service *Service
}
