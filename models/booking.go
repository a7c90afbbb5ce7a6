// models/booking.go
package models

import (
	"encoding/json"
	"time"
)

// BookingRecord is one confirmed reservation extracted from the dashboard.
// Immutable once extracted.
type BookingRecord struct {
	BookingID    string `json:"booking_id"`
	CustomerName string `json:"customer_name"`
	PhoneNumber  string `json:"phone_number"` // digits only, 01X########
	BookingTime  string `json:"booking_time"` // e.g. "오후 3:15"
	ProductName  string `json:"product_name"`
}

// SendResult is the outcome of the immediate confirmation message.
type SendResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Detail  json.RawMessage `json:"detail,omitempty"`
}

// ReminderResult is the outcome of the scheduled reminder workflow.
// GroupID is set as soon as the provider group exists, even when a later
// step failed and left the group unscheduled.
type ReminderResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	GroupID string `json:"group_id,omitempty"`
}

// DispatchOutcome aggregates both delivery paths for one booking.
type DispatchOutcome struct {
	BookingID    string         `json:"booking_id"`
	CustomerName string         `json:"customer_name"`
	PhoneNumber  string         `json:"phone_number"`
	Immediate    SendResult     `json:"immediate"`
	Reminder     ReminderResult `json:"reminder"`
}

// BatchReport summarizes one dispatch run. Success/Failed count only the
// immediate path; reminders are best-effort.
type BatchReport struct {
	Total    int               `json:"total"`
	Success  int               `json:"success"`
	Failed   int               `json:"failed"`
	Outcomes []DispatchOutcome `json:"results"`
}

// RunLog is the persisted record of one extraction (and optional dispatch) run.
type RunLog struct {
	RunID       string            `json:"run_id"`
	Timestamp   time.Time         `json:"timestamp"`
	Date        string            `json:"date"` // YYYY-MM-DD in KST
	Count       int               `json:"count"`
	Bookings    []BookingRecord   `json:"bookings"`
	SendResults []DispatchOutcome `json:"send_results,omitempty"`
}
