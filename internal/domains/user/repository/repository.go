package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"rental/infras/flatfile"
	"rental/infras/otel"
	"rental/internal/domains/user/model"
	gRepo "rental/shared/repository"
)

type User interface {
	LoadAll(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id string) (model.User, bool, error)
	FindByUsername(ctx context.Context, username string) (model.User, bool, error)
	Append(ctx context.Context, user model.User) error
	Update(ctx context.Context, user model.User) error
	Delete(ctx context.Context, id string) error
}

type repositoryImpl struct {
	*gRepo.Store[model.User]
}

func New(dir *flatfile.Dir, ot otel.Otel) User {
	store := gRepo.NewStore(
		model.EntityName,
		dir.File(model.FileName),
		model.Encode,
		model.Decode,
		func(u model.User) string { return u.ID },
		[]gRepo.UniqueKey[model.User]{
			{Name: "username", Value: func(u model.User) string { return u.Username }},
		},
		ot,
	)

	return &repositoryImpl{Store: store}
}

func (r *repositoryImpl) FindByUsername(ctx context.Context, username string) (model.User, bool, error) {
	users, err := r.LoadAll(ctx)
	if err != nil {
		return model.User{}, false, err
	}

	for _, user := range users {
		if user.Username == username {
			return user, true, nil
		}
	}

	return model.User{}, false, nil
}
