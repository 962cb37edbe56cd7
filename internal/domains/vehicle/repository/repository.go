package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"rental/infras/flatfile"
	"rental/infras/otel"
	"rental/internal/domains/vehicle/model"
	gRepo "rental/shared/repository"
)

type Vehicle interface {
	LoadAll(ctx context.Context) ([]model.Vehicle, error)
	FindByID(ctx context.Context, id string) (model.Vehicle, bool, error)
	Append(ctx context.Context, vehicle model.Vehicle) error
	Update(ctx context.Context, vehicle model.Vehicle) error
	Delete(ctx context.Context, id string) error
}

type repositoryImpl struct {
	*gRepo.Store[model.Vehicle]
}

func New(dir *flatfile.Dir, ot otel.Otel) Vehicle {
	store := gRepo.NewStore(
		model.EntityName,
		dir.File(model.FileName),
		model.Encode,
		model.Decode,
		func(v model.Vehicle) string { return v.ID },
		nil,
		ot,
	)

	return &repositoryImpl{Store: store}
}
