package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"rental/internal/domains/booking/model"
	"rental/internal/domains/booking/model/dto"
	"rental/internal/domains/booking/repository"
	vehicleRepo "rental/internal/domains/vehicle/repository"
	"rental/internal/events"
	"rental/shared"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"

	"rental/infras/otel"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	GetByUser(ctx context.Context, userID string, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	RentalHistory(ctx context.Context, vehicleID string) ([]dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	UpdateStatus(ctx context.Context, id, status string) error
	Cancel(ctx context.Context, id string) error
	CheckAvailability(ctx context.Context, vehicleID string, start, end time.Time, excludeBookingID string) (bool, error)
}

type serviceImpl struct {
	repo        repository.Booking
	vehicleRepo vehicleRepo.Vehicle
	publisher   events.Publisher
	otel        otel.Otel
}

func New(repo repository.Booking, vehicleRepo vehicleRepo.Vehicle, publisher events.Publisher, ot otel.Otel) Booking {
	return &serviceImpl{
		repo:        repo,
		vehicleRepo: vehicleRepo,
		publisher:   publisher,
		otel:        ot,
	}
}

// InclusiveDays counts the billable days of a booking; both endpoints count.
func InclusiveDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	return int(e.Sub(s).Hours()/24) + 1
}

// ComputeTotalCost is dailyRate times the inclusive day count.
func ComputeTotalCost(dailyRate float64, start, end time.Time) float64 {
	return dailyRate * float64(InclusiveDays(start, end))
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	start, end, err := req.Dates()
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if end.Before(start) {
		return res, failure.BadRequestFromString("end date must be on or after start date") // nolint:wrapcheck
	}

	vehicle, found, err := s.vehicleRepo.FindByID(ctx, req.VehicleID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load vehicle")

		return res, fmt.Errorf("failed to load vehicle: %w", err)
	}

	if !found {
		return res, failure.BadRequestFromString("vehicle does not exist") // nolint:wrapcheck
	}

	available, err := s.CheckAvailability(ctx, req.VehicleID, start, end, constant.Empty)
	if err != nil {
		return res, err
	}

	if !available {
		return res, failure.Conflict("vehicle is already booked for the selected dates") // nolint:wrapcheck
	}

	booking := req.ToModel(userID, start, end, ComputeTotalCost(vehicle.DailyRate, start, end))

	if err = s.repo.Append(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.publisher.Booking(ctx, events.BookingEvent{
		Type:      events.BookingCreated,
		BookingID: booking.ID,
		UserID:    booking.UserID,
		VehicleID: booking.VehicleID,
		Status:    booking.Status,
	})

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if !found {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookings, err := s.repo.LoadAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(shared.Paginate(bookings, params.Page, params.Limit), len(bookings), params.Limit)

	return res, nil
}

func (s *serviceImpl) GetByUser(ctx context.Context, userID string, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByUser")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookings, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user bookings")

		return res, fmt.Errorf("failed to get user bookings: %w", err)
	}

	res.FromModels(shared.Paginate(bookings, params.Page, params.Limit), len(bookings), params.Limit)

	return res, nil
}

// RentalHistory lists a vehicle's bookings ordered by start date.
func (s *serviceImpl) RentalHistory(ctx context.Context, vehicleID string) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RentalHistory")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookings, err := s.repo.FindByVehicle(ctx, vehicleID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicle bookings")

		return nil, fmt.Errorf("failed to get vehicle bookings: %w", err)
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].StartDate.Before(bookings[j].StartDate)
	})

	res = make([]dto.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		response := dto.BookingResponse{}
		response.FromModel(booking)
		res = append(res, response)
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if !found {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err := s.authorizeOwner(ctx, booking); err != nil {
		return err
	}

	if booking.Terminal() {
		return failure.BadRequestFromString(fmt.Sprintf("cannot modify a %s booking", booking.Status)) // nolint:wrapcheck
	}

	start, end, err := req.Dates()
	if err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if end.Before(start) {
		return failure.BadRequestFromString("end date must be on or after start date") // nolint:wrapcheck
	}

	// The booking being edited must not block itself.
	available, err := s.CheckAvailability(ctx, booking.VehicleID, start, end, booking.ID)
	if err != nil {
		return err
	}

	if !available {
		return failure.Conflict("vehicle is already booked for the selected dates") // nolint:wrapcheck
	}

	vehicle, found, err := s.vehicleRepo.FindByID(ctx, booking.VehicleID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load vehicle")

		return fmt.Errorf("failed to load vehicle: %w", err)
	}

	if !found {
		return failure.NotFound("vehicle not found") // nolint:wrapcheck
	}

	booking.StartDate = start
	booking.EndDate = end
	booking.TotalCost = ComputeTotalCost(vehicle.DailyRate, start, end)

	if err = s.repo.Update(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	s.publisher.Booking(ctx, events.BookingEvent{
		Type:      events.BookingUpdated,
		BookingID: booking.ID,
		UserID:    booking.UserID,
		VehicleID: booking.VehicleID,
		Status:    booking.Status,
	})

	return nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id, status string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if !found {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if !model.ValidTransition(booking.Status, status) {
		return failure.BadRequestFromString(fmt.Sprintf("invalid status transition %s -> %s", booking.Status, status)) // nolint:wrapcheck
	}

	booking.Status = status

	if err = s.repo.Update(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	eventType := events.BookingUpdated

	switch status {
	case model.StatusCancelled:
		eventType = events.BookingCancelled
	case model.StatusCompleted:
		eventType = events.BookingCompleted
	}

	s.publisher.Booking(ctx, events.BookingEvent{
		Type:      eventType,
		BookingID: booking.ID,
		UserID:    booking.UserID,
		VehicleID: booking.VehicleID,
		Status:    booking.Status,
	})

	return nil
}

// Cancel flips the booking to CANCELLED and nothing else. Releasing the
// vehicle and refunding approved payments are separate explicit steps the
// caller performs.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if !found {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err := s.authorizeOwner(ctx, booking); err != nil {
		return err
	}

	return s.UpdateStatus(ctx, id, model.StatusCancelled)
}

// CheckAvailability reports whether the vehicle is free for the inclusive
// date range. Cancelled bookings never block, and neither does the booking
// identified by excludeBookingID.
func (s *serviceImpl) CheckAvailability(ctx context.Context, vehicleID string, start, end time.Time, excludeBookingID string) (available bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookings, err := s.repo.FindByVehicle(ctx, vehicleID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicle bookings")

		return false, fmt.Errorf("failed to get vehicle bookings: %w", err)
	}

	for _, booking := range bookings {
		if excludeBookingID != constant.Empty && booking.ID == excludeBookingID {
			continue
		}

		if booking.Status == model.StatusCancelled {
			continue
		}

		// Inclusive ranges overlap unless one ends before the other starts.
		if !(end.Before(booking.StartDate) || start.After(booking.EndDate)) {
			return false, nil
		}
	}

	return true, nil
}

func (s *serviceImpl) authorizeOwner(ctx context.Context, booking model.Booking) error {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.RoleAdmin {
		return nil
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID != booking.UserID {
		return failure.Forbidden("you can only manage your own bookings") // nolint:wrapcheck
	}

	return nil
}
