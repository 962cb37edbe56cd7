package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"rental/infras/otel"
	reviewRepo "rental/internal/domains/review/repository"
	"rental/internal/domains/vehicle/model"
	"rental/internal/domains/vehicle/model/dto"
	"rental/internal/domains/vehicle/repository"
	"rental/shared"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"
)

const (
	SortByDailyRate = "daily_rate"
	SortByRating    = "rating"
	SortByAvailable = "available"
)

type Vehicle interface {
	Create(ctx context.Context, req dto.CreateVehicleRequest) (dto.VehicleResponse, error)
	Get(ctx context.Context, id string) (dto.VehicleResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetVehiclesResponse, error)
	Update(ctx context.Context, req dto.UpdateVehicleRequest, id string) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Vehicle
	reviewRepo reviewRepo.Review
	otel       otel.Otel
}

func New(repo repository.Vehicle, reviewRepo reviewRepo.Review, ot otel.Otel) Vehicle {
	return &serviceImpl{
		repo:       repo,
		reviewRepo: reviewRepo,
		otel:       ot,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateVehicleRequest) (res dto.VehicleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	vehicle := req.ToModel()

	if err = s.repo.Append(ctx, vehicle); err != nil {
		log.Error().Err(err).Msg("failed to create vehicle")

		return res, fmt.Errorf("failed to create vehicle: %w", err)
	}

	res.FromModel(vehicle)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.VehicleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	vehicle, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicle")

		return res, fmt.Errorf("failed to get vehicle: %w", err)
	}

	if !found {
		return res, failure.NotFound("vehicle not found") // nolint:wrapcheck
	}

	if err = s.attachRating(ctx, &vehicle); err != nil {
		return res, err
	}

	res.FromModel(vehicle)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetVehiclesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	vehicles, err := s.repo.LoadAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicles")

		return res, fmt.Errorf("failed to get vehicles: %w", err)
	}

	for i := range vehicles {
		if err = s.attachRating(ctx, &vehicles[i]); err != nil {
			return res, err
		}
	}

	sortVehicles(vehicles, params.SortBy, params.SortDir)

	res.FromModels(shared.Paginate(vehicles, params.Page, params.Limit), len(vehicles), params.Limit)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateVehicleRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	vehicle, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicle")

		return fmt.Errorf("failed to get vehicle: %w", err)
	}

	if !found {
		return failure.NotFound("vehicle not found") // nolint:wrapcheck
	}

	req.ApplyTo(&vehicle)

	if err = s.repo.Update(ctx, vehicle); err != nil {
		log.Error().Err(err).Msg("failed to update vehicle")

		return fmt.Errorf("failed to update vehicle: %w", err)
	}

	return nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id, status string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if status != model.StatusAvailable && status != model.StatusRented && status != model.StatusMaintenance {
		return failure.BadRequestFromString("unknown vehicle status " + status) // nolint:wrapcheck
	}

	vehicle, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicle")

		return fmt.Errorf("failed to get vehicle: %w", err)
	}

	if !found {
		return failure.NotFound("vehicle not found") // nolint:wrapcheck
	}

	vehicle.Status = status

	if err = s.repo.Update(ctx, vehicle); err != nil {
		log.Error().Err(err).Msg("failed to update vehicle status")

		return fmt.Errorf("failed to update vehicle status: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to delete vehicle")

		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	return nil
}

// attachRating fills the derived rating fields from the vehicle's reviews.
// A vehicle with no reviews has a rating of zero, not NaN.
func (s *serviceImpl) attachRating(ctx context.Context, vehicle *model.Vehicle) error {
	reviews, err := s.reviewRepo.FindByVehicle(ctx, vehicle.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicle reviews")

		return fmt.Errorf("failed to get vehicle reviews: %w", err)
	}

	vehicle.ReviewCount = len(reviews)
	vehicle.AverageRating = 0

	if len(reviews) == 0 {
		return nil
	}

	total := 0
	for _, review := range reviews {
		total += review.Rating
	}

	vehicle.AverageRating = float64(total) / float64(len(reviews))

	return nil
}

// sortVehicles orders the listing in place. The stable sort keeps the file
// order for ties, matching what users of the legacy listings expect.
func sortVehicles(vehicles []model.Vehicle, sortBy, sortDir string) {
	switch sortBy {
	case SortByDailyRate:
		sort.SliceStable(vehicles, func(i, j int) bool {
			if sortDir == gDto.SortDirDesc {
				return vehicles[i].DailyRate > vehicles[j].DailyRate
			}

			return vehicles[i].DailyRate < vehicles[j].DailyRate
		})
	case SortByRating:
		sort.SliceStable(vehicles, func(i, j int) bool {
			if sortDir == gDto.SortDirAsc {
				return vehicles[i].AverageRating < vehicles[j].AverageRating
			}

			return vehicles[i].AverageRating > vehicles[j].AverageRating
		})
	case SortByAvailable:
		sort.SliceStable(vehicles, func(i, j int) bool {
			if vehicles[i].Available() != vehicles[j].Available() {
				return vehicles[i].Available()
			}

			return vehicles[i].DailyRate < vehicles[j].DailyRate
		})
	}
}
