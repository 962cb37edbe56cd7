package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"rental/infras/otel/mocks"
	bookingMocks "rental/internal/domains/booking/mocks"
	bookingModel "rental/internal/domains/booking/model"
	reviewMocks "rental/internal/domains/review/mocks"
	"rental/internal/domains/review/model"
	"rental/internal/domains/review/model/dto"
	"rental/internal/domains/review/service"
	"rental/shared/constant"
	"rental/shared/failure"
)

func userContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestReviewService_CanReview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockBookingRepo, mockOtel)

	completed := bookingModel.Booking{
		ID:        "booking-1",
		UserID:    "user-1",
		VehicleID: "vehicle-1",
		Status:    bookingModel.StatusCompleted,
	}

	tests := []struct {
		name      string
		setupMock func()
		want      bool
	}{
		{
			name: "completed rental without a prior review is eligible",
			setupMock: func() {
				mockRepo.EXPECT().
					FindByUserAndVehicle(gomock.Any(), "user-1", "vehicle-1").
					Return(model.Review{}, false, nil)

				mockBookingRepo.EXPECT().
					FindByUser(gomock.Any(), "user-1").
					Return([]bookingModel.Booking{completed}, nil)
			},
			want: true,
		},
		{
			name: "a prior review blocks another one",
			setupMock: func() {
				mockRepo.EXPECT().
					FindByUserAndVehicle(gomock.Any(), "user-1", "vehicle-1").
					Return(model.Review{ID: "review-1"}, true, nil)
			},
			want: false,
		},
		{
			name: "unfinished rental is not eligible",
			setupMock: func() {
				confirmed := completed
				confirmed.Status = bookingModel.StatusConfirmed

				mockRepo.EXPECT().
					FindByUserAndVehicle(gomock.Any(), "user-1", "vehicle-1").
					Return(model.Review{}, false, nil)

				mockBookingRepo.EXPECT().
					FindByUser(gomock.Any(), "user-1").
					Return([]bookingModel.Booking{confirmed}, nil)
			},
			want: false,
		},
		{
			name: "completed rental of another vehicle does not count",
			setupMock: func() {
				other := completed
				other.VehicleID = "vehicle-2"

				mockRepo.EXPECT().
					FindByUserAndVehicle(gomock.Any(), "user-1", "vehicle-1").
					Return(model.Review{}, false, nil)

				mockBookingRepo.EXPECT().
					FindByUser(gomock.Any(), "user-1").
					Return([]bookingModel.Booking{other}, nil)
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			eligible, err := svc.CanReview(context.Background(), "user-1", "vehicle-1")

			assert.NoError(t, err)
			assert.Equal(t, tt.want, eligible)
		})
	}
}

func TestReviewService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockBookingRepo, mockOtel)

	completed := bookingModel.Booking{
		UserID:    "user-1",
		VehicleID: "vehicle-1",
		Status:    bookingModel.StatusCompleted,
	}

	t.Run("eligible user creates a review", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByUserAndVehicle(gomock.Any(), "user-1", "vehicle-1").
			Return(model.Review{}, false, nil)

		mockBookingRepo.EXPECT().
			FindByUser(gomock.Any(), "user-1").
			Return([]bookingModel.Booking{completed}, nil)

		mockRepo.EXPECT().
			Append(gomock.Any(), gomock.Any()).
			Return(nil)

		req := dto.CreateReviewRequest{VehicleID: "vehicle-1", Rating: 5, Comment: "smooth ride"}

		res, err := svc.Create(userContext("user-1", constant.RoleUser), req)

		assert.NoError(t, err)
		assert.Equal(t, "user-1", res.UserID)
		assert.Equal(t, 5, res.Rating)
	})

	t.Run("rating outside the scale is rejected", func(t *testing.T) {
		req := dto.CreateReviewRequest{VehicleID: "vehicle-1", Rating: 6}

		_, err := svc.Create(userContext("user-1", constant.RoleUser), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("ineligible user is forbidden", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByUserAndVehicle(gomock.Any(), "user-1", "vehicle-1").
			Return(model.Review{ID: "review-1"}, true, nil)

		req := dto.CreateReviewRequest{VehicleID: "vehicle-1", Rating: 4}

		_, err := svc.Create(userContext("user-1", constant.RoleUser), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}

func TestReviewService_GetByVehicle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockBookingRepo, mockOtel)

	t.Run("average over the vehicle reviews", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByVehicle(gomock.Any(), "vehicle-1").
			Return([]model.Review{
				{ID: "review-1", Rating: 4},
				{ID: "review-2", Rating: 5},
			}, nil)

		res, err := svc.GetByVehicle(context.Background(), "vehicle-1")

		assert.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		assert.Equal(t, 4.5, res.AverageRating)
	})

	t.Run("no reviews means zero average", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByVehicle(gomock.Any(), "vehicle-1").
			Return([]model.Review{}, nil)

		res, err := svc.GetByVehicle(context.Background(), "vehicle-1")

		assert.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		assert.Equal(t, 0.0, res.AverageRating)
	})
}

func TestReviewService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockBookingRepo, mockOtel)

	review := model.Review{ID: "review-1", UserID: "user-1", VehicleID: "vehicle-1"}

	t.Run("owner deletes their review", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByID(gomock.Any(), "review-1").
			Return(review, true, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), "review-1").
			Return(nil)

		err := svc.Delete(userContext("user-1", constant.RoleUser), "review-1")

		assert.NoError(t, err)
	})

	t.Run("another user is forbidden", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByID(gomock.Any(), "review-1").
			Return(review, true, nil)

		err := svc.Delete(userContext("user-2", constant.RoleUser), "review-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("admin deletes any review", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByID(gomock.Any(), "review-1").
			Return(review, true, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), "review-1").
			Return(nil)

		err := svc.Delete(userContext("admin-1", constant.RoleAdmin), "review-1")

		assert.NoError(t, err)
	})
}
