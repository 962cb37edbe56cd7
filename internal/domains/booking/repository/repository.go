package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"rental/infras/flatfile"
	"rental/infras/otel"
	"rental/internal/domains/booking/model"
	gRepo "rental/shared/repository"
)

type Booking interface {
	LoadAll(ctx context.Context) ([]model.Booking, error)
	FindByID(ctx context.Context, id string) (model.Booking, bool, error)
	FindByUser(ctx context.Context, userID string) ([]model.Booking, error)
	FindByVehicle(ctx context.Context, vehicleID string) ([]model.Booking, error)
	Append(ctx context.Context, booking model.Booking) error
	Update(ctx context.Context, booking model.Booking) error
	Delete(ctx context.Context, id string) error
}

type repositoryImpl struct {
	*gRepo.Store[model.Booking]
}

func New(dir *flatfile.Dir, ot otel.Otel) Booking {
	store := gRepo.NewStore(
		model.EntityName,
		dir.File(model.FileName),
		model.Encode,
		model.Decode,
		func(b model.Booking) string { return b.ID },
		nil,
		ot,
	)

	return &repositoryImpl{Store: store}
}

func (r *repositoryImpl) FindByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	bookings, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]model.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if booking.UserID == userID {
			matched = append(matched, booking)
		}
	}

	return matched, nil
}

func (r *repositoryImpl) FindByVehicle(ctx context.Context, vehicleID string) ([]model.Booking, error) {
	bookings, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]model.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if booking.VehicleID == vehicleID {
			matched = append(matched, booking)
		}
	}

	return matched, nil
}
