package entities

// BookingEmailData is the template payload for booking notification
// emails and SMS.
type BookingEmailData struct {
	UserName      string
	BookingCode   string
	Status        string
	VehicleLabel  string
	ServiceNames  []string
	DateFormatted string
	Time          string
	TotalDollars  string
	CurrentYear   int
}
