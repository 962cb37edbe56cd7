package model

import (
	"time"

	"rental/shared/record"
)

const (
	FileName   = "payments.txt"
	EntityName = "payment"
	Delimiter  = record.DelimiterComma

	minFields = 8
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"

	MethodRefund = "REFUND"
)

type Payment struct {
	ID          string    `json:"id"`
	BookingID   string    `json:"booking_id"`
	UserID      string    `json:"user_id"`
	Amount      float64   `json:"amount"`
	PaymentDate time.Time `json:"payment_date"`
	Method      string    `json:"method"`
	Status      string    `json:"status"`
	SlipPath    string    `json:"slip_path"`
	Notes       string    `json:"notes,omitempty"`
	ProcessedBy string    `json:"processed_by,omitempty"`
	ProcessedAt time.Time `json:"processed_at,omitzero"`
}

// NewRefund builds the compensating record for an approved payment: a new
// payment with the amount negated, method REFUND and status APPROVED. The
// original record is never mutated.
func NewRefund(id string, original Payment, processedBy string, now time.Time) Payment {
	return Payment{
		ID:          id,
		BookingID:   original.BookingID,
		UserID:      original.UserID,
		Amount:      -original.Amount,
		PaymentDate: now,
		Method:      MethodRefund,
		Status:      StatusApproved,
		Notes:       "refund of payment " + original.ID,
		ProcessedBy: processedBy,
		ProcessedAt: now,
	}
}

// Encode serializes the payment to one comma-delimited line:
// id,bookingId,userId,amount,paymentDate,method,status,slipPath,notes,processedBy,processedAt
func Encode(p Payment) string {
	return record.Join(Delimiter,
		p.ID,
		p.BookingID,
		p.UserID,
		record.FormatFloat(p.Amount),
		record.FormatTime(p.PaymentDate),
		record.Clean(Delimiter, p.Method),
		p.Status,
		record.Clean(Delimiter, p.SlipPath),
		record.Clean(Delimiter, p.Notes),
		p.ProcessedBy,
		record.FormatTime(p.ProcessedAt),
	)
}

func Decode(line string) (Payment, error) {
	fields, err := record.Split(line, Delimiter, minFields)
	if err != nil {
		return Payment{}, err
	}

	payment := Payment{
		ID:          fields.Get(0),
		BookingID:   fields.Get(1),
		UserID:      fields.Get(2),
		Amount:      fields.Float(3),
		PaymentDate: fields.Time(4),
		Method:      fields.Get(5),
		Status:      fields.Get(6),
		SlipPath:    fields.Get(7),
		Notes:       fields.Get(8),
		ProcessedBy: fields.Get(9),
		ProcessedAt: fields.OptionalTime(10),
	}

	if err := fields.Err(); err != nil {
		return Payment{}, err
	}

	return payment, nil
}
