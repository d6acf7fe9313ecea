package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"autocare/internal/db"
	"autocare/internal/entities"
)

// SenderService renders and sends booking notifications. Sends are fired
// asynchronously and never fail the triggering operation; failures are
// logged only.
type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func (s *SenderService) SendBookingEmail(owner *db.User, booking *db.Booking, event string) {
	data := bookingEmailData(owner, booking, event)

	subject := fmt.Sprintf("Your AutoCare appointment is %s - Code: %s", data.Status, data.BookingCode)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour AutoCare appointment is %s.\n\n"+
			"Appointment details:\n"+
			"Confirmation code: %s\n"+
			"Vehicle: %s\n"+
			"Services: %s\n"+
			"Date: %s at %s\n"+
			"Total: $%s\n\n"+
			"Thank you for choosing AutoCare.\n\n"+
			"%d AutoCare. All rights reserved.",
		data.UserName, data.Status, data.BookingCode, data.VehicleLabel,
		strings.Join(data.ServiceNames, ", "), data.DateFormatted, data.Time,
		data.TotalDollars, data.CurrentYear,
	)

	go func(toEmail, toName, subject, body string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, body, ""); err != nil {
			log.Printf("ALERT (async): email for booking %s failed: %v", data.BookingCode, err)
		}
	}(owner.Email, data.UserName, subject, plainTextBody)
}

func (s *SenderService) SendBookingSMS(owner *db.User, booking *db.Booking, event string) {
	data := bookingEmailData(owner, booking, event)
	message := fmt.Sprintf("AutoCare: appointment %s is %s.\n%s at %s.\nMore details in your email.",
		data.BookingCode, data.Status, data.DateFormatted, data.Time)

	go func(phone string) {
		if err := SendSMS(phone, message); err != nil {
			log.Printf("ALERT (async): SMS for booking %s failed: %v", data.BookingCode, err)
		}
	}(owner.Phone)
}

func bookingEmailData(owner *db.User, booking *db.Booking, event string) entities.BookingEmailData {
	data := entities.BookingEmailData{
		UserName:      owner.Name,
		BookingCode:   booking.Code,
		Status:        event,
		DateFormatted: booking.AppointmentDate.Format("02 Jan 2006"),
		Time:          booking.AppointmentTime,
		TotalDollars:  FormatCents(booking.TotalPriceCents),
		CurrentYear:   time.Now().UTC().Year(),
	}
	if booking.Vehicle != nil {
		data.VehicleLabel = fmt.Sprintf("%s %s (%s)", booking.Vehicle.Make, booking.Vehicle.Model, booking.Vehicle.LicensePlate)
	}
	for _, item := range booking.Services {
		if item.Service != nil {
			data.ServiceNames = append(data.ServiceNames, item.Service.Name)
		}
	}
	return data
}

// FormatCents renders integer cents as a two-decimal string.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
