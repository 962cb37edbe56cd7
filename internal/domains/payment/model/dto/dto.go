package dto

import (
	"mime/multipart"

	"rental/internal/domains/payment/model"
	"rental/shared"
	"rental/shared/constant"
	"rental/shared/timezone"
)

type SubmitPaymentRequest struct {
	BookingID string  `json:"booking_id" validate:"required"`
	Amount    float64 `json:"amount"     validate:"required,gt=0"`
	Method    string  `json:"method"     validate:"required"`

	Slip       multipart.File        `json:"-" validate:"omitempty"`
	SlipHeader *multipart.FileHeader `json:"-" validate:"omitempty,mimetypes=image/jpeg image/png application/pdf,maxfilesize=5"`
}

func (s *SubmitPaymentRequest) ToModel(id, userID, slipPath string) model.Payment {
	return model.Payment{
		ID:          id,
		BookingID:   s.BookingID,
		UserID:      userID,
		Amount:      s.Amount,
		PaymentDate: timezone.Now(),
		Method:      s.Method,
		Status:      model.StatusPending,
		SlipPath:    slipPath,
	}
}

type DecidePaymentRequest struct {
	Notes string `json:"notes" validate:"omitempty"`
}

type PaymentResponse struct {
	ID          string  `json:"id"`
	BookingID   string  `json:"booking_id"`
	UserID      string  `json:"user_id"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"`
	Method      string  `json:"method"`
	Status      string  `json:"status"`
	SlipPath    string  `json:"slip_path"`
	Notes       string  `json:"notes,omitempty"`
	ProcessedBy string  `json:"processed_by,omitempty"`
	ProcessedAt string  `json:"processed_at,omitempty"`
}

func (p *PaymentResponse) FromModel(payment model.Payment) {
	p.ID = payment.ID
	p.BookingID = payment.BookingID
	p.UserID = payment.UserID
	p.Amount = payment.Amount
	p.PaymentDate = timezone.Format(payment.PaymentDate, constant.DateTimeFormat)
	p.Method = payment.Method
	p.Status = payment.Status
	p.SlipPath = payment.SlipPath
	p.Notes = payment.Notes
	p.ProcessedBy = payment.ProcessedBy

	if !payment.ProcessedAt.IsZero() {
		p.ProcessedAt = timezone.Format(payment.ProcessedAt, constant.DateTimeFormat)
	}
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	Total     int               `json:"total"`
	TotalPage int               `json:"total_page"`
}

func (g *GetPaymentsResponse) FromModels(payments []model.Payment, total, limit int) {
	g.Payments = make([]PaymentResponse, 0, len(payments))

	for _, payment := range payments {
		response := PaymentResponse{}
		response.FromModel(payment)
		g.Payments = append(g.Payments, response)
	}

	g.Total = total
	g.TotalPage = shared.CalculateTotalPage(total, limit)
}
