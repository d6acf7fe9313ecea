package service

import "autocare/internal/db"

// TotalCents sums line-item prices. Money is integer cents throughout, so
// the total is exact; formatting to two decimals is a presentation concern.
func TotalCents(items []db.BookingService) int64 {
	var total int64
	for _, item := range items {
		total += item.PriceCents
	}
	return total
}
