package api

import (
	"autocare/internal/db"
)

// Auth
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
type AuthResponse struct {
	Token string       `json:"token,omitempty"`
	User  UserResponse `json:"user"`
}
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Catalog
type ServiceResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	PriceCents      int64  `json:"price_cents"`
	DurationMinutes int    `json:"duration_minutes"`
	Category        string `json:"category"`
}

// Vehicles
type VehicleRequest struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	LicensePlate string `json:"license_plate"`
	Color        string `json:"color,omitempty"`
}
type VehicleResponse struct {
	ID           string `json:"id"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	LicensePlate string `json:"license_plate"`
	Color        string `json:"color,omitempty"`
}

// Bookings
type CreateBookingRequest struct {
	VehicleID       string   `json:"vehicle_id"`
	AppointmentDate string   `json:"appointment_date"`
	AppointmentTime string   `json:"appointment_time"`
	ServiceIDs      []string `json:"service_ids"`
	Notes           string   `json:"notes,omitempty"`
}
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
type BookingServiceResponse struct {
	ServiceID  string `json:"service_id"`
	Name       string `json:"name,omitempty"`
	PriceCents int64  `json:"price_cents"`
}
type BookingResponse struct {
	ID              string                   `json:"id"`
	Code            string                   `json:"code"`
	AppointmentDate string                   `json:"appointment_date"`
	AppointmentTime string                   `json:"appointment_time"`
	Status          string                   `json:"status"`
	TotalPriceCents int64                    `json:"total_price_cents"`
	Notes           string                   `json:"notes,omitempty"`
	Vehicle         *VehicleResponse         `json:"vehicle,omitempty"`
	Services        []BookingServiceResponse `json:"services"`
}
type BookingsListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Count    int               `json:"count"`
}

func toUserResponse(u *db.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}

func toServiceResponse(s db.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		PriceCents:      s.PriceCents,
		DurationMinutes: s.DurationMinutes,
		Category:        string(s.Category),
	}
}

func toVehicleResponse(v *db.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:           v.ID,
		Make:         v.Make,
		Model:        v.Model,
		Year:         v.Year,
		LicensePlate: v.LicensePlate,
		Color:        v.Color,
	}
}

func toBookingResponse(b *db.Booking) BookingResponse {
	resp := BookingResponse{
		ID:              b.ID,
		Code:            b.Code,
		AppointmentDate: b.AppointmentDate.Format("2006-01-02"),
		AppointmentTime: b.AppointmentTime,
		Status:          string(b.Status),
		TotalPriceCents: b.TotalPriceCents,
		Notes:           b.Notes,
	}
	if b.Vehicle != nil {
		v := toVehicleResponse(b.Vehicle)
		resp.Vehicle = &v
	}
	for _, item := range b.Services {
		line := BookingServiceResponse{ServiceID: item.ServiceID, PriceCents: item.PriceCents}
		if item.Service != nil {
			line.Name = item.Service.Name
		}
		resp.Services = append(resp.Services, line)
	}
	return resp
}
