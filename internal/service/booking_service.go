package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"autocare/internal/apperrors"
	"autocare/internal/db"
	"autocare/internal/repository"
	"autocare/internal/utils"
)

// BookingService is the booking engine: it creates priced bookings,
// enforces the status lifecycle and reads bookings back for their owner.
// There is no concurrent-edit protection on a single booking; two racing
// status updates are last-write-wins.
type BookingService struct {
	store  repository.Store
	sender *SenderService
}

func NewBookingService(store repository.Store, sender *SenderService) *BookingService {
	return &BookingService{store: store, sender: sender}
}

type CreateBookingInput struct {
	OwnerID         string
	VehicleID       string
	AppointmentDate string // "2006-01-02"
	AppointmentTime string // "15:04", 30-minute grid
	ServiceIDs      []string
	Notes           string
}

func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*db.Booking, error) {
	if strings.TrimSpace(in.OwnerID) == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	serviceIDs := dedupe(in.ServiceIDs)
	if len(serviceIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one service must be selected", apperrors.ErrInvalidServiceSelection)
	}

	date, err := time.Parse("2006-01-02", in.AppointmentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad appointment date %q", apperrors.ErrValidation, in.AppointmentDate)
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return nil, apperrors.ErrInvalidDate
	}
	if !utils.ValidTimeSlot(in.AppointmentTime) {
		return nil, fmt.Errorf("%w: appointment time %q is not on the 30-minute grid", apperrors.ErrValidation, in.AppointmentTime)
	}

	vehicle, err := s.store.GetVehicleByID(ctx, in.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("resolving vehicle: %w", err)
	}
	if vehicle.OwnerID != in.OwnerID {
		return nil, apperrors.ErrOwnershipMismatch
	}

	services, err := s.store.GetServicesByIDs(ctx, serviceIDs)
	if err != nil {
		return nil, fmt.Errorf("resolving services: %w", err)
	}
	if len(services) != len(serviceIDs) {
		return nil, fmt.Errorf("%w: one or more selected services do not exist", apperrors.ErrInvalidServiceSelection)
	}

	now := time.Now().UTC()
	booking := &db.Booking{
		ID:              uuid.NewString(),
		Code:            fmt.Sprintf("%08X", now.UnixNano()%100000000),
		OwnerID:         in.OwnerID,
		VehicleID:       vehicle.ID,
		AppointmentDate: date,
		AppointmentTime: in.AppointmentTime,
		Status:          db.StatusPending,
		Notes:           strings.TrimSpace(in.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
		Vehicle:         vehicle,
	}
	for _, svc := range services {
		svc := svc
		booking.Services = append(booking.Services, db.BookingService{
			ID:         uuid.NewString(),
			BookingID:  booking.ID,
			ServiceID:  svc.ID,
			PriceCents: svc.PriceCents, // snapshot: later catalog changes must not move this booking's total
			Service:    &svc,
		})
	}
	booking.TotalPriceCents = TotalCents(booking.Services)

	if err := s.store.CreateBooking(ctx, booking); err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		log.Printf("Error persisting booking %s: %v", booking.Code, err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrBookingCreationFailed, err)
	}

	s.notify(ctx, booking, "received")
	return booking, nil
}

// List returns the owner's bookings, newest appointment first, with the
// vehicle and priced line items populated.
func (s *BookingService) List(ctx context.Context, ownerID string) ([]db.Booking, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	return s.store.ListBookingsByOwner(ctx, ownerID)
}

func (s *BookingService) Get(ctx context.Context, ownerID, bookingID string) (*db.Booking, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	b, err := s.store.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != ownerID {
		return nil, apperrors.ErrOwnershipMismatch
	}
	return b, nil
}

// UpdateStatus applies one step of the booking lifecycle. Transitions
// outside the state machine, including anything out of a terminal state,
// are rejected.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID, rawStatus string) (*db.Booking, error) {
	to, err := db.ParseBookingStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	b, err := s.store.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !db.CanTransition(b.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, b.Status, to)
	}

	now := time.Now().UTC()
	if err := s.store.UpdateBookingStatus(ctx, bookingID, to, now); err != nil {
		return nil, fmt.Errorf("updating booking status: %w", err)
	}
	b.Status = to
	b.UpdatedAt = now

	s.notify(ctx, b, string(to))
	return b, nil
}

// Cancel is the owner-facing cancellation: ownership is checked, then the
// booking moves to cancelled through the same state machine.
func (s *BookingService) Cancel(ctx context.Context, ownerID, bookingID string) (*db.Booking, error) {
	if _, err := s.Get(ctx, ownerID, bookingID); err != nil {
		return nil, err
	}
	return s.UpdateStatus(ctx, bookingID, string(db.StatusCancelled))
}

func (s *BookingService) notify(ctx context.Context, b *db.Booking, event string) {
	if s.sender == nil {
		return
	}
	owner, err := s.store.GetUserByID(ctx, b.OwnerID)
	if err != nil {
		log.Printf("Booking %s: could not load owner for notification: %v", b.Code, err)
		return
	}
	s.sender.SendBookingEmail(owner, b, event)
	s.sender.SendBookingSMS(owner, b, event)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	var out []string
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
