package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"rental/infras/otel/mocks"
	reviewMocks "rental/internal/domains/review/mocks"
	reviewModel "rental/internal/domains/review/model"
	vehicleMocks "rental/internal/domains/vehicle/mocks"
	"rental/internal/domains/vehicle/model"
	"rental/internal/domains/vehicle/model/dto"
	"rental/internal/domains/vehicle/service"
	gDto "rental/shared/dto"
	"rental/shared/failure"
)

func TestVehicleService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := vehicleMocks.NewMockVehicle(ctrl)
	mockReviewRepo := reviewMocks.NewMockReview(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockReviewRepo, mockOtel)

	vehicle := model.Vehicle{ID: "vehicle-1", Make: "Toyota", Model: "Avanza", DailyRate: 350000}

	t.Run("rating is derived from reviews", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByID(gomock.Any(), "vehicle-1").
			Return(vehicle, true, nil)

		mockReviewRepo.EXPECT().
			FindByVehicle(gomock.Any(), "vehicle-1").
			Return([]reviewModel.Review{
				{Rating: 3},
				{Rating: 5},
			}, nil)

		res, err := svc.Get(context.Background(), "vehicle-1")

		assert.NoError(t, err)
		assert.Equal(t, 4.0, res.AverageRating)
		assert.Equal(t, 2, res.ReviewCount)
	})

	t.Run("no reviews means zero rating", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByID(gomock.Any(), "vehicle-1").
			Return(vehicle, true, nil)

		mockReviewRepo.EXPECT().
			FindByVehicle(gomock.Any(), "vehicle-1").
			Return([]reviewModel.Review{}, nil)

		res, err := svc.Get(context.Background(), "vehicle-1")

		assert.NoError(t, err)
		assert.Equal(t, 0.0, res.AverageRating)
		assert.Equal(t, 0, res.ReviewCount)
	})

	t.Run("missing vehicle is not found", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByID(gomock.Any(), "missing").
			Return(model.Vehicle{}, false, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestVehicleService_GetAll_Sorting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := vehicleMocks.NewMockVehicle(ctrl)
	mockReviewRepo := reviewMocks.NewMockReview(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockReviewRepo, mockOtel)

	vehicles := []model.Vehicle{
		{ID: "vehicle-1", DailyRate: 500000, Status: model.StatusRented},
		{ID: "vehicle-2", DailyRate: 300000, Status: model.StatusAvailable},
		{ID: "vehicle-3", DailyRate: 400000, Status: model.StatusAvailable},
	}

	ratings := map[string][]reviewModel.Review{
		"vehicle-1": {{Rating: 5}},
		"vehicle-2": {{Rating: 3}},
		"vehicle-3": {},
	}

	setupMocks := func() {
		mockRepo.EXPECT().
			LoadAll(gomock.Any()).
			Return(append([]model.Vehicle(nil), vehicles...), nil)

		for id, reviews := range ratings {
			mockReviewRepo.EXPECT().
				FindByVehicle(gomock.Any(), id).
				Return(reviews, nil)
		}
	}

	tests := []struct {
		name      string
		params    gDto.QueryParams
		wantOrder []string
	}{
		{
			name:      "cheapest first",
			params:    gDto.QueryParams{Page: 1, Limit: 10, SortBy: service.SortByDailyRate, SortDir: gDto.SortDirAsc},
			wantOrder: []string{"vehicle-2", "vehicle-3", "vehicle-1"},
		},
		{
			name:      "most expensive first",
			params:    gDto.QueryParams{Page: 1, Limit: 10, SortBy: service.SortByDailyRate, SortDir: gDto.SortDirDesc},
			wantOrder: []string{"vehicle-1", "vehicle-3", "vehicle-2"},
		},
		{
			name:      "best rated first by default",
			params:    gDto.QueryParams{Page: 1, Limit: 10, SortBy: service.SortByRating},
			wantOrder: []string{"vehicle-1", "vehicle-2", "vehicle-3"},
		},
		{
			name:      "available vehicles first",
			params:    gDto.QueryParams{Page: 1, Limit: 10, SortBy: service.SortByAvailable},
			wantOrder: []string{"vehicle-2", "vehicle-3", "vehicle-1"},
		},
		{
			name:      "no sort keeps file order",
			params:    gDto.QueryParams{Page: 1, Limit: 10},
			wantOrder: []string{"vehicle-1", "vehicle-2", "vehicle-3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupMocks()

			res, err := svc.GetAll(context.Background(), tt.params)

			assert.NoError(t, err)
			assert.Equal(t, len(tt.wantOrder), len(res.Vehicles))

			for i, id := range tt.wantOrder {
				assert.Equal(t, id, res.Vehicles[i].ID)
			}
		})
	}
}

func TestVehicleService_GetAll_AvailableTiesSortByRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := vehicleMocks.NewMockVehicle(ctrl)
	mockReviewRepo := reviewMocks.NewMockReview(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockReviewRepo, mockOtel)

	// The pricier available vehicle comes first in the file on purpose.
	vehicles := []model.Vehicle{
		{ID: "vehicle-1", DailyRate: 400000, Status: model.StatusAvailable},
		{ID: "vehicle-2", DailyRate: 300000, Status: model.StatusAvailable},
		{ID: "vehicle-3", DailyRate: 250000, Status: model.StatusRented},
	}

	mockRepo.EXPECT().
		LoadAll(gomock.Any()).
		Return(vehicles, nil)

	for _, vehicle := range vehicles {
		mockReviewRepo.EXPECT().
			FindByVehicle(gomock.Any(), vehicle.ID).
			Return([]reviewModel.Review{}, nil)
	}

	params := gDto.QueryParams{Page: 1, Limit: 10, SortBy: service.SortByAvailable}

	res, err := svc.GetAll(context.Background(), params)

	assert.NoError(t, err)

	wantOrder := []string{"vehicle-2", "vehicle-1", "vehicle-3"}
	for i, id := range wantOrder {
		assert.Equal(t, id, res.Vehicles[i].ID)
	}
}

func TestVehicleService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := vehicleMocks.NewMockVehicle(ctrl)
	mockReviewRepo := reviewMocks.NewMockReview(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockReviewRepo, mockOtel)

	vehicle := model.Vehicle{ID: "vehicle-1", Status: model.StatusAvailable}

	t.Run("known status is applied", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByID(gomock.Any(), "vehicle-1").
			Return(vehicle, true, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, updated model.Vehicle) {
				assert.Equal(t, model.StatusMaintenance, updated.Status)
			}).
			Return(nil)

		err := svc.UpdateStatus(context.Background(), "vehicle-1", model.StatusMaintenance)

		assert.NoError(t, err)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		err := svc.UpdateStatus(context.Background(), "vehicle-1", "broken")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestVehicleService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := vehicleMocks.NewMockVehicle(ctrl)
	mockReviewRepo := reviewMocks.NewMockReview(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockReviewRepo, mockOtel)

	mockRepo.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		Return(nil)

	req := dto.CreateVehicleRequest{
		Type:               "car",
		Make:               "Toyota",
		Model:              "Avanza",
		Year:               2023,
		RegistrationNumber: "B 1234 XYZ",
		DailyRate:          350000,
	}

	res, err := svc.Create(context.Background(), req)

	assert.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, model.StatusAvailable, res.Status)
}
