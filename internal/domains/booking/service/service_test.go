package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"rental/infras/otel/mocks"
	bookingMocks "rental/internal/domains/booking/mocks"
	"rental/internal/domains/booking/model"
	"rental/internal/domains/booking/model/dto"
	"rental/internal/domains/booking/service"
	vehicleMocks "rental/internal/domains/vehicle/mocks"
	vehicleModel "rental/internal/domains/vehicle/model"
	eventMocks "rental/internal/events/mocks"
	"rental/shared/constant"
	"rental/shared/failure"
)

func day(value string) time.Time {
	parsed, err := time.Parse(constant.DateFormat, value)
	if err != nil {
		panic(err)
	}

	return parsed
}

func userContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestInclusiveDays(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{name: "same day counts as one", start: "2026-03-10", end: "2026-03-10", want: 1},
		{name: "both endpoints count", start: "2026-03-10", end: "2026-03-12", want: 3},
		{name: "across month boundary", start: "2026-01-30", end: "2026-02-02", want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.InclusiveDays(day(tt.start), day(tt.end)))
		})
	}
}

func TestComputeTotalCost(t *testing.T) {
	assert.Equal(t, 300.0, service.ComputeTotalCost(100, day("2026-03-10"), day("2026-03-12")))
	assert.Equal(t, 100.0, service.ComputeTotalCost(100, day("2026-03-10"), day("2026-03-10")))
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockVehicleRepo := vehicleMocks.NewMockVehicle(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockVehicleRepo, mockPublisher, mockOtel)

	vehicle := vehicleModel.Vehicle{
		ID:        "vehicle-1",
		DailyRate: 100,
		Status:    vehicleModel.StatusAvailable,
	}

	existing := model.Booking{
		ID:        "booking-1",
		UserID:    "other-user",
		VehicleID: "vehicle-1",
		StartDate: day("2026-03-14"),
		EndDate:   day("2026-03-16"),
		Status:    model.StatusConfirmed,
	}

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
		wantCost  float64
	}{
		{
			name: "successful booking costs rate times inclusive days",
			req: dto.CreateBookingRequest{
				VehicleID: "vehicle-1",
				StartDate: "2026-03-10",
				EndDate:   "2026-03-12",
			},
			setupMock: func() {
				mockVehicleRepo.EXPECT().
					FindByID(gomock.Any(), "vehicle-1").
					Return(vehicle, true, nil)

				mockRepo.EXPECT().
					FindByVehicle(gomock.Any(), "vehicle-1").
					Return([]model.Booking{existing}, nil)

				mockRepo.EXPECT().
					Append(gomock.Any(), gomock.Any()).
					Return(nil)

				mockPublisher.EXPECT().
					Booking(gomock.Any(), gomock.Any())
			},
			wantCost: 300,
		},
		{
			name: "end before start is rejected",
			req: dto.CreateBookingRequest{
				VehicleID: "vehicle-1",
				StartDate: "2026-03-12",
				EndDate:   "2026-03-10",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown vehicle is rejected",
			req: dto.CreateBookingRequest{
				VehicleID: "missing",
				StartDate: "2026-03-10",
				EndDate:   "2026-03-12",
			},
			setupMock: func() {
				mockVehicleRepo.EXPECT().
					FindByID(gomock.Any(), "missing").
					Return(vehicleModel.Vehicle{}, false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "overlapping booking conflicts",
			req: dto.CreateBookingRequest{
				VehicleID: "vehicle-1",
				StartDate: "2026-03-15",
				EndDate:   "2026-03-18",
			},
			setupMock: func() {
				mockVehicleRepo.EXPECT().
					FindByID(gomock.Any(), "vehicle-1").
					Return(vehicle, true, nil)

				mockRepo.EXPECT().
					FindByVehicle(gomock.Any(), "vehicle-1").
					Return([]model.Booking{existing}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "touching endpoint still conflicts",
			req: dto.CreateBookingRequest{
				VehicleID: "vehicle-1",
				StartDate: "2026-03-16",
				EndDate:   "2026-03-18",
			},
			setupMock: func() {
				mockVehicleRepo.EXPECT().
					FindByID(gomock.Any(), "vehicle-1").
					Return(vehicle, true, nil)

				mockRepo.EXPECT().
					FindByVehicle(gomock.Any(), "vehicle-1").
					Return([]model.Booking{existing}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "cancelled booking never blocks",
			req: dto.CreateBookingRequest{
				VehicleID: "vehicle-1",
				StartDate: "2026-03-14",
				EndDate:   "2026-03-16",
			},
			setupMock: func() {
				cancelled := existing
				cancelled.Status = model.StatusCancelled

				mockVehicleRepo.EXPECT().
					FindByID(gomock.Any(), "vehicle-1").
					Return(vehicle, true, nil)

				mockRepo.EXPECT().
					FindByVehicle(gomock.Any(), "vehicle-1").
					Return([]model.Booking{cancelled}, nil)

				mockRepo.EXPECT().
					Append(gomock.Any(), gomock.Any()).
					Return(nil)

				mockPublisher.EXPECT().
					Booking(gomock.Any(), gomock.Any())
			},
			wantCost: 300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(userContext("user-1", constant.RoleUser), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "user-1", res.UserID)
			assert.Equal(t, model.StatusPending, res.Status)
			assert.Equal(t, tt.wantCost, res.TotalCost)
		})
	}
}

func TestBookingService_CheckAvailability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockVehicleRepo := vehicleMocks.NewMockVehicle(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockVehicleRepo, mockPublisher, mockOtel)

	existing := model.Booking{
		ID:        "booking-1",
		VehicleID: "vehicle-1",
		StartDate: day("2026-03-14"),
		EndDate:   day("2026-03-16"),
		Status:    model.StatusConfirmed,
	}

	tests := []struct {
		name      string
		start     string
		end       string
		excludeID string
		want      bool
	}{
		{name: "free range before the booking", start: "2026-03-10", end: "2026-03-13", want: true},
		{name: "free range after the booking", start: "2026-03-17", end: "2026-03-20", want: true},
		{name: "contained range conflicts", start: "2026-03-15", end: "2026-03-15", want: false},
		{name: "touching start date conflicts", start: "2026-03-12", end: "2026-03-14", want: false},
		{name: "excluded booking does not block itself", start: "2026-03-14", end: "2026-03-16", excludeID: "booking-1", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.EXPECT().
				FindByVehicle(gomock.Any(), "vehicle-1").
				Return([]model.Booking{existing}, nil)

			available, err := svc.CheckAvailability(context.Background(), "vehicle-1", day(tt.start), day(tt.end), tt.excludeID)

			assert.NoError(t, err)
			assert.Equal(t, tt.want, available)
		})
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockVehicleRepo := vehicleMocks.NewMockVehicle(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockVehicleRepo, mockPublisher, mockOtel)

	tests := []struct {
		name      string
		from      string
		to        string
		setupMock func(booking model.Booking)
		wantErr   bool
	}{
		{
			name: "pending to confirmed",
			from: model.StatusPending,
			to:   model.StatusConfirmed,
			setupMock: func(booking model.Booking) {
				mockRepo.EXPECT().
					FindByID(gomock.Any(), booking.ID).
					Return(booking, true, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any()).
					Return(nil)

				mockPublisher.EXPECT().
					Booking(gomock.Any(), gomock.Any())
			},
		},
		{
			name: "pending cannot jump to paid",
			from: model.StatusPending,
			to:   model.StatusPaid,
			setupMock: func(booking model.Booking) {
				mockRepo.EXPECT().
					FindByID(gomock.Any(), booking.ID).
					Return(booking, true, nil)
			},
			wantErr: true,
		},
		{
			name: "completed booking cannot be cancelled",
			from: model.StatusCompleted,
			to:   model.StatusCancelled,
			setupMock: func(booking model.Booking) {
				mockRepo.EXPECT().
					FindByID(gomock.Any(), booking.ID).
					Return(booking, true, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := model.Booking{ID: "booking-1", UserID: "user-1", Status: tt.from}
			tt.setupMock(booking)

			err := svc.UpdateStatus(context.Background(), booking.ID, tt.to)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockVehicleRepo := vehicleMocks.NewMockVehicle(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockVehicleRepo, mockPublisher, mockOtel)

	booking := model.Booking{ID: "booking-1", UserID: "user-1", Status: model.StatusConfirmed}

	t.Run("owner can cancel", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByID(gomock.Any(), "booking-1").
			Return(booking, true, nil).
			Times(2)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(nil)

		mockPublisher.EXPECT().
			Booking(gomock.Any(), gomock.Any())

		err := svc.Cancel(userContext("user-1", constant.RoleUser), "booking-1")

		assert.NoError(t, err)
	})

	t.Run("another user cannot cancel", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByID(gomock.Any(), "booking-1").
			Return(booking, true, nil)

		err := svc.Cancel(userContext("user-2", constant.RoleUser), "booking-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("admin can cancel any booking", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByID(gomock.Any(), "booking-1").
			Return(booking, true, nil).
			Times(2)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(nil)

		mockPublisher.EXPECT().
			Booking(gomock.Any(), gomock.Any())

		err := svc.Cancel(userContext("admin-1", constant.RoleAdmin), "booking-1")

		assert.NoError(t, err)
	})

	t.Run("missing booking is not found", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByID(gomock.Any(), "missing").
			Return(model.Booking{}, false, nil)

		err := svc.Cancel(userContext("user-1", constant.RoleUser), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockVehicleRepo := vehicleMocks.NewMockVehicle(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockVehicleRepo, mockPublisher, mockOtel)

	vehicle := vehicleModel.Vehicle{ID: "vehicle-1", DailyRate: 50}
	booking := model.Booking{
		ID:        "booking-1",
		UserID:    "user-1",
		VehicleID: "vehicle-1",
		StartDate: day("2026-03-10"),
		EndDate:   day("2026-03-12"),
		Status:    model.StatusPending,
	}

	t.Run("own dates do not block the reschedule", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByID(gomock.Any(), "booking-1").
			Return(booking, true, nil)

		mockRepo.EXPECT().
			FindByVehicle(gomock.Any(), "vehicle-1").
			Return([]model.Booking{booking}, nil)

		mockVehicleRepo.EXPECT().
			FindByID(gomock.Any(), "vehicle-1").
			Return(vehicle, true, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, updated model.Booking) {
				assert.Equal(t, 200.0, updated.TotalCost)
			}).
			Return(nil)

		mockPublisher.EXPECT().
			Booking(gomock.Any(), gomock.Any())

		req := dto.UpdateBookingRequest{StartDate: "2026-03-11", EndDate: "2026-03-14"}

		err := svc.Update(userContext("user-1", constant.RoleUser), req, "booking-1")

		assert.NoError(t, err)
	})

	t.Run("terminal booking cannot be modified", func(t *testing.T) {
		cancelled := booking
		cancelled.Status = model.StatusCancelled

		mockRepo.EXPECT().
			FindByID(gomock.Any(), "booking-1").
			Return(cancelled, true, nil)

		req := dto.UpdateBookingRequest{StartDate: "2026-03-11", EndDate: "2026-03-14"}

		err := svc.Update(userContext("user-1", constant.RoleUser), req, "booking-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("repository failure is wrapped", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByID(gomock.Any(), "booking-1").
			Return(model.Booking{}, false, errors.New("disk failure"))

		req := dto.UpdateBookingRequest{StartDate: "2026-03-11", EndDate: "2026-03-14"}

		err := svc.Update(userContext("user-1", constant.RoleUser), req, "booking-1")

		assert.Error(t, err)
	})
}

func TestBookingService_RentalHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockVehicleRepo := vehicleMocks.NewMockVehicle(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockVehicleRepo, mockPublisher, mockOtel)

	// Stored out of order; the history comes back ordered by start date.
	mockRepo.EXPECT().
		FindByVehicle(gomock.Any(), "vehicle-1").
		Return([]model.Booking{
			{ID: "booking-2", VehicleID: "vehicle-1", StartDate: day("2026-03-20"), EndDate: day("2026-03-22")},
			{ID: "booking-1", VehicleID: "vehicle-1", StartDate: day("2026-03-10"), EndDate: day("2026-03-12")},
			{ID: "booking-3", VehicleID: "vehicle-1", StartDate: day("2026-04-01"), EndDate: day("2026-04-03")},
		}, nil)

	res, err := svc.RentalHistory(context.Background(), "vehicle-1")

	assert.NoError(t, err)
	assert.Len(t, res, 3)

	wantOrder := []string{"booking-1", "booking-2", "booking-3"}
	for i, id := range wantOrder {
		assert.Equal(t, id, res[i].ID)
	}
}

func TestValidTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{model.StatusPending, model.StatusConfirmed, true},
		{model.StatusPending, model.StatusPaid, false},
		{model.StatusConfirmed, model.StatusPaid, true},
		{model.StatusConfirmed, model.StatusCompleted, true},
		{model.StatusPaid, model.StatusCompleted, true},
		{model.StatusPending, model.StatusCancelled, true},
		{model.StatusPaid, model.StatusCancelled, true},
		{model.StatusCancelled, model.StatusCancelled, false},
		{model.StatusCompleted, model.StatusCancelled, false},
		{model.StatusCompleted, model.StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+" to "+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, model.ValidTransition(tt.from, tt.to))
		})
	}
}
