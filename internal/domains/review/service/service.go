package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"rental/infras/otel"
	bookingModel "rental/internal/domains/booking/model"
	bookingRepo "rental/internal/domains/booking/repository"
	"rental/internal/domains/review/model"
	"rental/internal/domains/review/model/dto"
	"rental/internal/domains/review/repository"
	"rental/shared/constant"
	"rental/shared/failure"
)

type Review interface {
	Create(ctx context.Context, req dto.CreateReviewRequest) (dto.ReviewResponse, error)
	GetByVehicle(ctx context.Context, vehicleID string) (dto.GetReviewsResponse, error)
	GetByUser(ctx context.Context, userID string) ([]dto.ReviewResponse, error)
	Delete(ctx context.Context, id string) error
	AverageRating(ctx context.Context, vehicleID string) (float64, error)
	CanReview(ctx context.Context, userID, vehicleID string) (bool, error)
}

type serviceImpl struct {
	repo        repository.Review
	bookingRepo bookingRepo.Booking
	otel        otel.Otel
}

func New(repo repository.Review, bookingRepo bookingRepo.Booking, ot otel.Otel) Review {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		otel:        ot,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReviewRequest) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if req.Rating < model.RatingMin || req.Rating > model.RatingMax {
		return res, failure.BadRequestFromString(fmt.Sprintf("rating must be between %d and %d", model.RatingMin, model.RatingMax)) // nolint:wrapcheck
	}

	// Eligibility is re-checked at write time; the browse endpoint may have
	// answered an earlier, now stale, CanReview.
	eligible, err := s.CanReview(ctx, userID, req.VehicleID)
	if err != nil {
		return res, err
	}

	if !eligible {
		return res, failure.Forbidden("you can only review vehicles from completed rentals you have not reviewed yet") // nolint:wrapcheck
	}

	review := req.ToModel(userID)

	if err = s.repo.Append(ctx, review); err != nil {
		log.Error().Err(err).Msg("failed to create review")

		return res, fmt.Errorf("failed to create review: %w", err)
	}

	res.FromModel(review)

	return res, nil
}

func (s *serviceImpl) GetByVehicle(ctx context.Context, vehicleID string) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByVehicle")
	defer scope.End()
	defer scope.TraceIfError(err)

	reviews, err := s.repo.FindByVehicle(ctx, vehicleID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicle reviews")

		return res, fmt.Errorf("failed to get vehicle reviews: %w", err)
	}

	res.FromModels(reviews, average(reviews))

	return res, nil
}

func (s *serviceImpl) GetByUser(ctx context.Context, userID string) (res []dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByUser")
	defer scope.End()
	defer scope.TraceIfError(err)

	reviews, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user reviews")

		return nil, fmt.Errorf("failed to get user reviews: %w", err)
	}

	res = make([]dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		response := dto.ReviewResponse{}
		response.FromModel(review)
		res = append(res, response)
	}

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	review, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get review")

		return fmt.Errorf("failed to get review: %w", err)
	}

	if !found {
		return failure.NotFound("review not found") // nolint:wrapcheck
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if role != constant.RoleAdmin && userID != review.UserID {
		return failure.Forbidden("you can only delete your own reviews") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to delete review")

		return fmt.Errorf("failed to delete review: %w", err)
	}

	return nil
}

func (s *serviceImpl) AverageRating(ctx context.Context, vehicleID string) (rating float64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AverageRating")
	defer scope.End()
	defer scope.TraceIfError(err)

	reviews, err := s.repo.FindByVehicle(ctx, vehicleID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicle reviews")

		return 0, fmt.Errorf("failed to get vehicle reviews: %w", err)
	}

	return average(reviews), nil
}

// CanReview reports whether the user has a completed booking for the vehicle
// and has not reviewed it before.
func (s *serviceImpl) CanReview(ctx context.Context, userID, vehicleID string) (eligible bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CanReview")
	defer scope.End()
	defer scope.TraceIfError(err)

	_, reviewed, err := s.repo.FindByUserAndVehicle(ctx, userID, vehicleID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get review")

		return false, fmt.Errorf("failed to get review: %w", err)
	}

	if reviewed {
		return false, nil
	}

	bookings, err := s.bookingRepo.FindByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user bookings")

		return false, fmt.Errorf("failed to get user bookings: %w", err)
	}

	for _, booking := range bookings {
		if booking.VehicleID == vehicleID && booking.Status == bookingModel.StatusCompleted {
			return true, nil
		}
	}

	return false, nil
}

// average is zero for an empty review list.
func average(reviews []model.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	total := 0
	for _, review := range reviews {
		total += review.Rating
	}

	return float64(total) / float64(len(reviews))
}
