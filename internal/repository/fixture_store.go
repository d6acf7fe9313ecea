package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"autocare/internal/apperrors"
	"autocare/internal/db"
)

// FixtureStore is the in-memory Store used for local development and
// tests. It is seeded with the demo catalog, user and vehicles, and holds
// everything under one mutex. All reads return copies.
type FixtureStore struct {
	mu       sync.RWMutex
	users    map[string]db.User
	vehicles map[string]db.Vehicle
	services map[string]db.Service
	bookings map[string]db.Booking
}

func NewFixtureStore() *FixtureStore {
	s := &FixtureStore{
		users:    make(map[string]db.User),
		vehicles: make(map[string]db.Vehicle),
		services: make(map[string]db.Service),
		bookings: make(map[string]db.Booking),
	}
	s.seed()
	return s
}

func (s *FixtureStore) seed() {
	seededAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	catalog := []db.Service{
		{ID: "service-1", Name: "Oil Change", Description: "Full synthetic oil change with filter replacement", PriceCents: 7999, DurationMinutes: 45, Category: db.CategoryBasic, Active: true, CreatedAt: seededAt},
		{ID: "service-2", Name: "Brake Inspection", Description: "Complete brake system inspection and service", PriceCents: 12000, DurationMinutes: 60, Category: db.CategoryBasic, Active: true, CreatedAt: seededAt},
		{ID: "service-3", Name: "Tire Rotation", Description: "Professional tire rotation and balance check", PriceCents: 4999, DurationMinutes: 30, Category: db.CategoryBasic, Active: true, CreatedAt: seededAt},
		{ID: "service-4", Name: "Engine Diagnostics", Description: "Comprehensive engine diagnostic scan", PriceCents: 19999, DurationMinutes: 120, Category: db.CategoryAdvanced, Active: true, CreatedAt: seededAt},
		{ID: "service-5", Name: "Transmission Service", Description: "Complete transmission flush and service", PriceCents: 29999, DurationMinutes: 180, Category: db.CategoryAdvanced, Active: true, CreatedAt: seededAt},
		{ID: "service-6", Name: "Collision Repair", Description: "Professional collision damage repair", PriceCents: 150000, DurationMinutes: 7 * 24 * 60, Category: db.CategoryAccident, Active: true, CreatedAt: seededAt},
	}
	for _, svc := range catalog {
		s.services[svc.ID] = svc
	}

	// Demo login: john.doe@example.com / password123
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	s.users["user-1"] = db.User{
		ID:           "user-1",
		Name:         "John Doe",
		Email:        "john.doe@example.com",
		Phone:        "(555) 123-4567",
		PasswordHash: string(hash),
		CreatedAt:    seededAt,
		UpdatedAt:    seededAt,
	}

	s.vehicles["vehicle-1"] = db.Vehicle{
		ID: "vehicle-1", OwnerID: "user-1", Make: "Toyota", Model: "Camry", Year: 2020,
		LicensePlate: "ABC-123", Color: "Silver",
		CreatedAt: seededAt.AddDate(0, 0, 14), UpdatedAt: seededAt.AddDate(0, 0, 14),
	}
	s.vehicles["vehicle-2"] = db.Vehicle{
		ID: "vehicle-2", OwnerID: "user-1", Make: "Honda", Model: "Accord", Year: 2019,
		LicensePlate: "XYZ-789", Color: "Black",
		CreatedAt: seededAt.AddDate(0, 1, 0), UpdatedAt: seededAt.AddDate(0, 1, 0),
	}
}

// SetServicePrice changes a catalog price in place. Test hook: existing
// bookings must keep the price snapshotted at creation time.
func (s *FixtureStore) SetServicePrice(id string, priceCents int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, ok := s.services[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	svc.PriceCents = priceCents
	s.services[id] = svc
	return nil
}

func (s *FixtureStore) ListActiveServices(_ context.Context) ([]db.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var services []db.Service
	for _, svc := range s.services {
		if svc.Active {
			services = append(services, svc)
		}
	}
	sort.Slice(services, func(i, j int) bool {
		if services[i].Category != services[j].Category {
			return services[i].Category < services[j].Category
		}
		return services[i].Name < services[j].Name
	})
	return services, nil
}

func (s *FixtureStore) GetServiceByID(_ context.Context, id string) (*db.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	svc, ok := s.services[id]
	if !ok || !svc.Active {
		return nil, apperrors.ErrNotFound
	}
	return &svc, nil
}

func (s *FixtureStore) GetServicesByIDs(_ context.Context, ids []string) ([]db.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var services []db.Service
	for _, id := range ids {
		if svc, ok := s.services[id]; ok && svc.Active {
			services = append(services, svc)
		}
	}
	return services, nil
}

func (s *FixtureStore) ListVehicles(_ context.Context, ownerID string) ([]db.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var vehicles []db.Vehicle
	for _, v := range s.vehicles {
		if v.OwnerID == ownerID {
			vehicles = append(vehicles, v)
		}
	}
	sort.Slice(vehicles, func(i, j int) bool {
		return vehicles[i].CreatedAt.After(vehicles[j].CreatedAt)
	})
	return vehicles, nil
}

func (s *FixtureStore) GetVehicleByID(_ context.Context, id string) (*db.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vehicles[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &v, nil
}

func (s *FixtureStore) CreateVehicle(_ context.Context, v *db.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles[v.ID] = *v
	return nil
}

func (s *FixtureStore) UpdateVehicle(_ context.Context, v *db.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vehicles[v.ID]; !ok {
		return apperrors.ErrNotFound
	}
	s.vehicles[v.ID] = *v
	return nil
}

func (s *FixtureStore) DeleteVehicle(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vehicles[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.vehicles, id)
	return nil
}

// CreateBooking has no partial-failure path here: header and line items
// land under one lock. The atomic-write contract only needs real work in
// the SQL store.
func (s *FixtureStore) CreateBooking(_ context.Context, b *db.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *b
	stored.Vehicle = nil
	stored.Services = append([]db.BookingService(nil), b.Services...)
	for i := range stored.Services {
		stored.Services[i].Service = nil
	}
	s.bookings[stored.ID] = stored
	return nil
}

func (s *FixtureStore) ListBookingsByOwner(ctx context.Context, ownerID string) ([]db.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var bookings []db.Booking
	for _, b := range s.bookings {
		if b.OwnerID == ownerID {
			bookings = append(bookings, s.populateLocked(b))
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].AppointmentDate.Equal(bookings[j].AppointmentDate) {
			return bookings[i].AppointmentDate.After(bookings[j].AppointmentDate)
		}
		return bookings[i].AppointmentTime > bookings[j].AppointmentTime
	})
	return bookings, nil
}

func (s *FixtureStore) GetBookingByID(_ context.Context, id string) (*db.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	populated := s.populateLocked(b)
	return &populated, nil
}

func (s *FixtureStore) UpdateBookingStatus(_ context.Context, id string, status db.BookingStatus, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = updatedAt
	s.bookings[id] = b
	return nil
}

func (s *FixtureStore) ConfirmedBookingsOn(_ context.Context, date time.Time) ([]db.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var bookings []db.Booking
	for _, b := range s.bookings {
		if b.Status == db.StatusConfirmed && sameDate(b.AppointmentDate, date) {
			bookings = append(bookings, s.populateLocked(b))
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].AppointmentTime < bookings[j].AppointmentTime
	})
	return bookings, nil
}

func (s *FixtureStore) CreateUser(_ context.Context, u *db.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return apperrors.ErrDuplicateEmail
		}
	}
	s.users[u.ID] = *u
	return nil
}

func (s *FixtureStore) UpdateUser(_ context.Context, u *db.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return apperrors.ErrNotFound
	}
	s.users[u.ID] = *u
	return nil
}

func (s *FixtureStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *FixtureStore) GetUserByID(_ context.Context, id string) (*db.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

// populateLocked returns a copy of b with nested vehicle and catalog data
// attached. Caller holds at least the read lock.
func (s *FixtureStore) populateLocked(b db.Booking) db.Booking {
	out := b
	if v, ok := s.vehicles[b.VehicleID]; ok {
		out.Vehicle = &v
	}
	out.Services = append([]db.BookingService(nil), b.Services...)
	for i := range out.Services {
		if svc, ok := s.services[out.Services[i].ServiceID]; ok {
			out.Services[i].Service = &svc
		}
	}
	return out
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
