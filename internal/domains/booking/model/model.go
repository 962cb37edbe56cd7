package model

import (
	"time"

	"rental/shared/record"
)

const (
	FileName   = "bookings.txt"
	EntityName = "booking"
	Delimiter  = record.DelimiterComma

	minFields = 8
)

const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusPaid      = "PAID"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

type Booking struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	VehicleID   string    `json:"vehicle_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	TotalCost   float64   `json:"total_cost"`
	Status      string    `json:"status"`
	BookingDate time.Time `json:"booking_date"`
}

// Terminal reports whether no further status transition is permitted.
func (b Booking) Terminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted
}

// ValidTransition enforces PENDING→CONFIRMED→PAID/COMPLETED, with CANCELLED
// reachable from any non-terminal state.
func ValidTransition(from, to string) bool {
	if to == StatusCancelled {
		return from != StatusCancelled && from != StatusCompleted
	}

	switch from {
	case StatusPending:
		return to == StatusConfirmed
	case StatusConfirmed:
		return to == StatusPaid || to == StatusCompleted
	case StatusPaid:
		return to == StatusCompleted
	default:
		return false
	}
}

// Encode serializes the booking to one comma-delimited line:
// id,userId,vehicleId,startDate,endDate,totalCost,status,bookingDate
func Encode(b Booking) string {
	return record.Join(Delimiter,
		b.ID,
		b.UserID,
		b.VehicleID,
		record.FormatDate(b.StartDate),
		record.FormatDate(b.EndDate),
		record.FormatFloat(b.TotalCost),
		b.Status,
		record.FormatTime(b.BookingDate),
	)
}

func Decode(line string) (Booking, error) {
	fields, err := record.Split(line, Delimiter, minFields)
	if err != nil {
		return Booking{}, err
	}

	booking := Booking{
		ID:          fields.Get(0),
		UserID:      fields.Get(1),
		VehicleID:   fields.Get(2),
		StartDate:   fields.Date(3),
		EndDate:     fields.Date(4),
		TotalCost:   fields.Float(5),
		Status:      fields.Get(6),
		BookingDate: fields.Time(7),
	}

	if err := fields.Err(); err != nil {
		return Booking{}, err
	}

	return booking, nil
}
