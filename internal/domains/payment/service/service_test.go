package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"rental/config"
	"rental/infras/otel/mocks"
	s3Mocks "rental/infras/s3/mocks"
	bookingMocks "rental/internal/domains/booking/mocks"
	bookingModel "rental/internal/domains/booking/model"
	paymentMocks "rental/internal/domains/payment/mocks"
	"rental/internal/domains/payment/model"
	"rental/internal/domains/payment/model/dto"
	"rental/internal/domains/payment/service"
	eventMocks "rental/internal/events/mocks"
	"rental/shared/constant"
	"rental/shared/failure"
)

type paymentMockSet struct {
	repo        *paymentMocks.MockPayment
	bookingRepo *bookingMocks.MockBooking
	publisher   *eventMocks.MockPublisher
	s3          *s3Mocks.MockS3
}

func newPaymentService(ctrl *gomock.Controller) (service.Payment, paymentMockSet) {
	set := paymentMockSet{
		repo:        paymentMocks.NewMockPayment(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		publisher:   eventMocks.NewMockPublisher(ctrl),
		s3:          s3Mocks.NewMockS3(ctrl),
	}

	svc := service.New(set.repo, set.bookingRepo, set.publisher, set.s3, &config.Config{}, mocks.NewOtel())

	return svc, set
}

func userContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestPaymentService_Submit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newPaymentService(ctrl)

	booking := bookingModel.Booking{
		ID:     "booking-1",
		UserID: "user-1",
		Status: bookingModel.StatusConfirmed,
	}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.SubmitPaymentRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "owner submits a payment without a slip",
			ctx:  userContext("user-1", constant.RoleUser),
			req:  dto.SubmitPaymentRequest{BookingID: "booking-1", Amount: 300000, Method: "TRANSFER"},
			setupMock: func() {
				set.bookingRepo.EXPECT().
					FindByID(gomock.Any(), "booking-1").
					Return(booking, true, nil)

				set.repo.EXPECT().
					Append(gomock.Any(), gomock.Any()).
					Return(nil)

				set.publisher.EXPECT().
					Payment(gomock.Any(), gomock.Any())
			},
		},
		{
			name: "unknown booking is rejected",
			ctx:  userContext("user-1", constant.RoleUser),
			req:  dto.SubmitPaymentRequest{BookingID: "missing", Amount: 300000, Method: "TRANSFER"},
			setupMock: func() {
				set.bookingRepo.EXPECT().
					FindByID(gomock.Any(), "missing").
					Return(bookingModel.Booking{}, false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "another user cannot pay",
			ctx:  userContext("user-2", constant.RoleUser),
			req:  dto.SubmitPaymentRequest{BookingID: "booking-1", Amount: 300000, Method: "TRANSFER"},
			setupMock: func() {
				set.bookingRepo.EXPECT().
					FindByID(gomock.Any(), "booking-1").
					Return(booking, true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "cancelled booking cannot be paid",
			ctx:  userContext("user-1", constant.RoleUser),
			req:  dto.SubmitPaymentRequest{BookingID: "booking-1", Amount: 300000, Method: "TRANSFER"},
			setupMock: func() {
				cancelled := booking
				cancelled.Status = bookingModel.StatusCancelled

				set.bookingRepo.EXPECT().
					FindByID(gomock.Any(), "booking-1").
					Return(cancelled, true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Submit(tt.ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, model.StatusPending, res.Status)
			assert.Equal(t, "user-1", res.UserID)
		})
	}
}

func TestPaymentService_Approve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newPaymentService(ctrl)

	payment := model.Payment{
		ID:        "payment-1",
		BookingID: "booking-1",
		UserID:    "user-1",
		Amount:    300000,
		Method:    "TRANSFER",
		Status:    model.StatusPending,
	}

	t.Run("approval moves the booking to paid", func(t *testing.T) {
		booking := bookingModel.Booking{ID: "booking-1", Status: bookingModel.StatusConfirmed}

		set.repo.EXPECT().
			FindByID(gomock.Any(), "payment-1").
			Return(payment, true, nil)

		set.repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, updated model.Payment) {
				assert.Equal(t, model.StatusApproved, updated.Status)
				assert.Equal(t, "admin-1", updated.ProcessedBy)
				assert.False(t, updated.ProcessedAt.IsZero())
			}).
			Return(nil)

		set.bookingRepo.EXPECT().
			FindByID(gomock.Any(), "booking-1").
			Return(booking, true, nil)

		set.bookingRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, updated bookingModel.Booking) {
				assert.Equal(t, bookingModel.StatusPaid, updated.Status)
			}).
			Return(nil)

		set.publisher.EXPECT().
			Payment(gomock.Any(), gomock.Any())

		err := svc.Approve(userContext("admin-1", constant.RoleAdmin), "payment-1", dto.DecidePaymentRequest{Notes: "verified"})

		assert.NoError(t, err)
	})

	t.Run("pending booking stays pending", func(t *testing.T) {
		booking := bookingModel.Booking{ID: "booking-1", Status: bookingModel.StatusPending}

		set.repo.EXPECT().
			FindByID(gomock.Any(), "payment-1").
			Return(payment, true, nil)

		set.repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(nil)

		set.bookingRepo.EXPECT().
			FindByID(gomock.Any(), "booking-1").
			Return(booking, true, nil)

		set.publisher.EXPECT().
			Payment(gomock.Any(), gomock.Any())

		err := svc.Approve(userContext("admin-1", constant.RoleAdmin), "payment-1", dto.DecidePaymentRequest{})

		assert.NoError(t, err)
	})

	t.Run("already decided payment cannot be approved again", func(t *testing.T) {
		approved := payment
		approved.Status = model.StatusApproved

		set.repo.EXPECT().
			FindByID(gomock.Any(), "payment-1").
			Return(approved, true, nil)

		err := svc.Approve(userContext("admin-1", constant.RoleAdmin), "payment-1", dto.DecidePaymentRequest{})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("missing payment is not found", func(t *testing.T) {
		set.repo.EXPECT().
			FindByID(gomock.Any(), "missing").
			Return(model.Payment{}, false, nil)

		err := svc.Approve(userContext("admin-1", constant.RoleAdmin), "missing", dto.DecidePaymentRequest{})

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestPaymentService_Reject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newPaymentService(ctrl)

	payment := model.Payment{
		ID:        "payment-1",
		BookingID: "booking-1",
		Status:    model.StatusPending,
	}

	set.repo.EXPECT().
		FindByID(gomock.Any(), "payment-1").
		Return(payment, true, nil)

	set.repo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, updated model.Payment) {
			assert.Equal(t, model.StatusRejected, updated.Status)
			assert.Equal(t, "slip unreadable", updated.Notes)
		}).
		Return(nil)

	set.publisher.EXPECT().
		Payment(gomock.Any(), gomock.Any())

	err := svc.Reject(userContext("admin-1", constant.RoleAdmin), "payment-1", dto.DecidePaymentRequest{Notes: "slip unreadable"})

	assert.NoError(t, err)
}

func TestPaymentService_Refund(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newPaymentService(ctrl)

	approved := model.Payment{
		ID:        "payment-1",
		BookingID: "booking-1",
		UserID:    "user-1",
		Amount:    300000,
		Method:    "TRANSFER",
		Status:    model.StatusApproved,
	}

	t.Run("approved payment is refunded", func(t *testing.T) {
		set.repo.EXPECT().
			FindByID(gomock.Any(), "payment-1").
			Return(approved, true, nil)

		set.repo.EXPECT().
			Append(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, created model.Payment) {
				assert.Equal(t, -300000.0, created.Amount)
				assert.Equal(t, model.MethodRefund, created.Method)
				assert.Equal(t, model.StatusApproved, created.Status)
				assert.Equal(t, "booking-1", created.BookingID)
				assert.Equal(t, "admin-1", created.ProcessedBy)
			}).
			Return(nil)

		set.publisher.EXPECT().
			Payment(gomock.Any(), gomock.Any())

		err := svc.Refund(userContext("admin-1", constant.RoleAdmin), "payment-1")

		assert.NoError(t, err)
	})

	t.Run("pending payment cannot be refunded", func(t *testing.T) {
		pending := approved
		pending.Status = model.StatusPending

		set.repo.EXPECT().
			FindByID(gomock.Any(), "payment-1").
			Return(pending, true, nil)

		err := svc.Refund(userContext("admin-1", constant.RoleAdmin), "payment-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("refund records cannot be refunded again", func(t *testing.T) {
		refund := approved
		refund.Amount = -300000
		refund.Method = model.MethodRefund

		set.repo.EXPECT().
			FindByID(gomock.Any(), "payment-1").
			Return(refund, true, nil)

		err := svc.Refund(userContext("admin-1", constant.RoleAdmin), "payment-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("missing payment is not found", func(t *testing.T) {
		set.repo.EXPECT().
			FindByID(gomock.Any(), "missing").
			Return(model.Payment{}, false, nil)

		err := svc.Refund(userContext("admin-1", constant.RoleAdmin), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestPaymentService_RefundForBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newPaymentService(ctrl)

	approved := model.Payment{
		ID:        "payment-1",
		BookingID: "booking-1",
		UserID:    "user-1",
		Amount:    300000,
		Method:    "TRANSFER",
		Status:    model.StatusApproved,
	}
	pending := model.Payment{
		ID:        "payment-2",
		BookingID: "booking-1",
		Status:    model.StatusPending,
	}
	refund := model.Payment{
		ID:        "payment-3",
		BookingID: "booking-1",
		Amount:    -150000,
		Method:    model.MethodRefund,
		Status:    model.StatusApproved,
	}

	t.Run("only approved non-refund payments are refunded", func(t *testing.T) {
		set.repo.EXPECT().
			FindByBooking(gomock.Any(), "booking-1").
			Return([]model.Payment{approved, pending, refund}, nil)

		set.repo.EXPECT().
			Append(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, created model.Payment) {
				assert.Equal(t, -300000.0, created.Amount)
				assert.Equal(t, model.MethodRefund, created.Method)
				assert.Equal(t, model.StatusApproved, created.Status)
				assert.Equal(t, "booking-1", created.BookingID)
			}).
			Return(nil)

		set.publisher.EXPECT().
			Payment(gomock.Any(), gomock.Any())

		err := svc.RefundForBooking(userContext("admin-1", constant.RoleAdmin), "booking-1")

		assert.NoError(t, err)
	})

	t.Run("no approved payments means no refunds", func(t *testing.T) {
		set.repo.EXPECT().
			FindByBooking(gomock.Any(), "booking-1").
			Return([]model.Payment{pending}, nil)

		err := svc.RefundForBooking(userContext("admin-1", constant.RoleAdmin), "booking-1")

		assert.NoError(t, err)
	})
}
