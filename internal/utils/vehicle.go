package utils

import (
	"strings"
	"time"
)

// NormalizePlate uppercases and trims a license plate. Plates are stored
// uppercased by convention.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// ValidYear bounds the model year to something a shop would actually see.
func ValidYear(year int) bool {
	return year >= 1900 && year <= time.Now().Year()+1
}

// ValidTimeSlot reports whether t is an "HH:MM" time on the 30-minute
// appointment grid.
func ValidTimeSlot(t string) bool {
	parsed, err := time.Parse("15:04", t)
	if err != nil {
		return false
	}
	return parsed.Minute()%30 == 0
}
