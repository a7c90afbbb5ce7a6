// services/extractor.go
package services

import (
	"regexp"
	"strings"

	"naver-booking-notifier/models"
)

// Row shape on the confirmed-bookings list view:
// 확정 전진환 010-2446-5967 1143205010 오후 11:15 백석담 ...
// Anything that does not match is skipped; the dump contains plenty of
// navigation and filter text around the rows.
var bookingLinePattern = regexp.MustCompile(`확정\s+(\S+)\s+(01[0-9]-\d{4}-\d{4})\s+(\d{10})\s+(오[전후]\s+\d{1,2}:\d{2})\s+(\S+)`)

// ExtractBookings parses the raw page text into booking records, dropping
// duplicate booking ids and keeping first-seen order.
func ExtractBookings(rawText string) []models.BookingRecord {
	matches := bookingLinePattern.FindAllStringSubmatch(rawText, -1)

	seen := make(map[string]bool, len(matches))
	var bookings []models.BookingRecord
	for _, m := range matches {
		name, phone, bookingID, bookingTime, product := m[1], m[2], m[3], m[4], m[5]
		if seen[bookingID] {
			continue
		}
		seen[bookingID] = true

		bookings = append(bookings, models.BookingRecord{
			BookingID:    bookingID,
			CustomerName: name,
			PhoneNumber:  strings.ReplaceAll(phone, "-", ""),
			BookingTime:  bookingTime,
			ProductName:  product,
		})
	}
	return bookings
}
