package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"rental/infras/flatfile"
	"rental/infras/otel"
	"rental/internal/domains/payment/model"
	gRepo "rental/shared/repository"
)

type Payment interface {
	LoadAll(ctx context.Context) ([]model.Payment, error)
	FindByID(ctx context.Context, id string) (model.Payment, bool, error)
	FindByBooking(ctx context.Context, bookingID string) ([]model.Payment, error)
	FindByUser(ctx context.Context, userID string) ([]model.Payment, error)
	Append(ctx context.Context, payment model.Payment) error
	Update(ctx context.Context, payment model.Payment) error
	Delete(ctx context.Context, id string) error
}

type repositoryImpl struct {
	*gRepo.Store[model.Payment]
}

func New(dir *flatfile.Dir, ot otel.Otel) Payment {
	store := gRepo.NewStore(
		model.EntityName,
		dir.File(model.FileName),
		model.Encode,
		model.Decode,
		func(p model.Payment) string { return p.ID },
		nil,
		ot,
	)

	return &repositoryImpl{Store: store}
}

func (r *repositoryImpl) FindByBooking(ctx context.Context, bookingID string) ([]model.Payment, error) {
	payments, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]model.Payment, 0, len(payments))
	for _, payment := range payments {
		if payment.BookingID == bookingID {
			matched = append(matched, payment)
		}
	}

	return matched, nil
}

func (r *repositoryImpl) FindByUser(ctx context.Context, userID string) ([]model.Payment, error) {
	payments, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]model.Payment, 0, len(payments))
	for _, payment := range payments {
		if payment.UserID == userID {
			matched = append(matched, payment)
		}
	}

	return matched, nil
}
