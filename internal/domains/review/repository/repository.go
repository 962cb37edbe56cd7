package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"rental/infras/flatfile"
	"rental/infras/otel"
	"rental/internal/domains/review/model"
	gRepo "rental/shared/repository"
)

type Review interface {
	LoadAll(ctx context.Context) ([]model.Review, error)
	FindByID(ctx context.Context, id string) (model.Review, bool, error)
	FindByVehicle(ctx context.Context, vehicleID string) ([]model.Review, error)
	FindByUser(ctx context.Context, userID string) ([]model.Review, error)
	FindByUserAndVehicle(ctx context.Context, userID, vehicleID string) (model.Review, bool, error)
	Append(ctx context.Context, review model.Review) error
	Update(ctx context.Context, review model.Review) error
	Delete(ctx context.Context, id string) error
}

type repositoryImpl struct {
	*gRepo.Store[model.Review]
}

func New(dir *flatfile.Dir, ot otel.Otel) Review {
	store := gRepo.NewStore(
		model.EntityName,
		dir.File(model.FileName),
		model.Encode,
		model.Decode,
		func(r model.Review) string { return r.ID },
		nil,
		ot,
	)

	return &repositoryImpl{Store: store}
}

func (r *repositoryImpl) FindByVehicle(ctx context.Context, vehicleID string) ([]model.Review, error) {
	reviews, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]model.Review, 0, len(reviews))
	for _, review := range reviews {
		if review.VehicleID == vehicleID {
			matched = append(matched, review)
		}
	}

	return matched, nil
}

func (r *repositoryImpl) FindByUser(ctx context.Context, userID string) ([]model.Review, error) {
	reviews, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]model.Review, 0, len(reviews))
	for _, review := range reviews {
		if review.UserID == userID {
			matched = append(matched, review)
		}
	}

	return matched, nil
}

func (r *repositoryImpl) FindByUserAndVehicle(ctx context.Context, userID, vehicleID string) (model.Review, bool, error) {
	reviews, err := r.LoadAll(ctx)
	if err != nil {
		return model.Review{}, false, err
	}

	for _, review := range reviews {
		if review.UserID == userID && review.VehicleID == vehicleID {
			return review, true, nil
		}
	}

	return model.Review{}, false, nil
}
