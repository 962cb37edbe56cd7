package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"rental/infras/flatfile"
	"rental/infras/otel"
	"rental/internal/domains/admin/model"
	gRepo "rental/shared/repository"
)

type Admin interface {
	LoadAll(ctx context.Context) ([]model.Admin, error)
	FindByID(ctx context.Context, id string) (model.Admin, bool, error)
	FindByUsername(ctx context.Context, username string) (model.Admin, bool, error)
	Append(ctx context.Context, admin model.Admin) error
	Update(ctx context.Context, admin model.Admin) error
	Delete(ctx context.Context, id string) error
}

type repositoryImpl struct {
	*gRepo.Store[model.Admin]
}

func New(dir *flatfile.Dir, ot otel.Otel) Admin {
	store := gRepo.NewStore(
		model.EntityName,
		dir.File(model.FileName),
		model.Encode,
		model.Decode,
		func(a model.Admin) string { return a.ID },
		[]gRepo.UniqueKey[model.Admin]{
			{Name: "username", Value: func(a model.Admin) string { return a.Username }},
		},
		ot,
	)

	return &repositoryImpl{Store: store}
}

func (r *repositoryImpl) FindByUsername(ctx context.Context, username string) (model.Admin, bool, error) {
	admins, err := r.LoadAll(ctx)
	if err != nil {
		return model.Admin{}, false, err
	}

	for _, admin := range admins {
		if admin.Username == username {
			return admin, true, nil
		}
	}

	return model.Admin{}, false, nil
}
