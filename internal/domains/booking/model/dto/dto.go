package dto

import (
	"time"

	"rental/internal/domains/booking/model"
	"rental/shared"
	"rental/shared/constant"
	"rental/shared/record"
	"rental/shared/timezone"
)

type CreateBookingRequest struct {
	VehicleID string `json:"vehicle_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date"   validate:"required"`
}

func (c *CreateBookingRequest) Dates() (start, end time.Time, err error) {
	start, err = timezone.Parse(constant.DateFormat, c.StartDate)
	if err != nil {
		return start, end, err
	}

	end, err = timezone.Parse(constant.DateFormat, c.EndDate)

	return start, end, err
}

func (c *CreateBookingRequest) ToModel(userID string, start, end time.Time, totalCost float64) model.Booking {
	return model.Booking{
		ID:          record.NewID(),
		UserID:      userID,
		VehicleID:   c.VehicleID,
		StartDate:   start,
		EndDate:     end,
		TotalCost:   totalCost,
		Status:      model.StatusPending,
		BookingDate: timezone.Now(),
	}
}

type UpdateBookingRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date"   validate:"required"`
}

func (u *UpdateBookingRequest) Dates() (start, end time.Time, err error) {
	start, err = timezone.Parse(constant.DateFormat, u.StartDate)
	if err != nil {
		return start, end, err
	}

	end, err = timezone.Parse(constant.DateFormat, u.EndDate)

	return start, end, err
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED PAID COMPLETED CANCELLED"`
}

type CheckAvailabilityRequest struct {
	VehicleID        string `json:"vehicle_id" validate:"required"`
	StartDate        string `json:"start_date" validate:"required"`
	EndDate          string `json:"end_date"   validate:"required"`
	ExcludeBookingID string `json:"exclude_booking_id" validate:"omitempty"`
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

type BookingResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	VehicleID   string  `json:"vehicle_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	TotalCost   float64 `json:"total_cost"`
	Status      string  `json:"status"`
	BookingDate string  `json:"booking_date"`
}

func (b *BookingResponse) FromModel(booking model.Booking) {
	b.ID = booking.ID
	b.UserID = booking.UserID
	b.VehicleID = booking.VehicleID
	b.StartDate = timezone.Format(booking.StartDate, constant.DateFormat)
	b.EndDate = timezone.Format(booking.EndDate, constant.DateFormat)
	b.TotalCost = booking.TotalCost
	b.Status = booking.Status
	b.BookingDate = timezone.Format(booking.BookingDate, constant.DateTimeFormat)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	Total     int               `json:"total"`
	TotalPage int               `json:"total_page"`
}

func (g *GetBookingsResponse) FromModels(bookings []model.Booking, total, limit int) {
	g.Bookings = make([]BookingResponse, 0, len(bookings))

	for _, booking := range bookings {
		response := BookingResponse{}
		response.FromModel(booking)
		g.Bookings = append(g.Bookings, response)
	}

	g.Total = total
	g.TotalPage = shared.CalculateTotalPage(total, limit)
}
