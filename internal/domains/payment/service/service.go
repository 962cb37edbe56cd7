package service

import (
	"context"
	"fmt"
	"path"

	"github.com/rs/zerolog/log"

	"rental/config"
	"rental/infras/otel"
	"rental/infras/s3"
	bookingModel "rental/internal/domains/booking/model"
	bookingRepo "rental/internal/domains/booking/repository"
	"rental/internal/domains/payment/model"
	"rental/internal/domains/payment/model/dto"
	"rental/internal/domains/payment/repository"
	"rental/internal/events"
	"rental/shared"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"
	"rental/shared/record"
	"rental/shared/timezone"
)

type Payment interface {
	Submit(ctx context.Context, req dto.SubmitPaymentRequest) (dto.PaymentResponse, error)
	Get(ctx context.Context, id string) (dto.PaymentResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetPaymentsResponse, error)
	GetByBooking(ctx context.Context, bookingID string) ([]dto.PaymentResponse, error)
	GetByUser(ctx context.Context, userID string, params gDto.QueryParams) (dto.GetPaymentsResponse, error)
	Approve(ctx context.Context, id string, req dto.DecidePaymentRequest) error
	Reject(ctx context.Context, id string, req dto.DecidePaymentRequest) error
	Refund(ctx context.Context, id string) error
	RefundForBooking(ctx context.Context, bookingID string) error
}

type serviceImpl struct {
	repo        repository.Payment
	bookingRepo bookingRepo.Booking
	publisher   events.Publisher
	s3          s3.S3
	cfg         *config.Config
	otel        otel.Otel
}

func New(
	repo repository.Payment,
	bookingRepo bookingRepo.Booking,
	publisher events.Publisher,
	s3Svc s3.S3,
	cfg *config.Config,
	ot otel.Otel,
) Payment {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		publisher:   publisher,
		s3:          s3Svc,
		cfg:         cfg,
		otel:        ot,
	}
}

func (s *serviceImpl) Submit(ctx context.Context, req dto.SubmitPaymentRequest) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Submit")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, found, err := s.bookingRepo.FindByID(ctx, req.BookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if !found {
		return res, failure.BadRequestFromString("booking does not exist") // nolint:wrapcheck
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role != constant.RoleAdmin && booking.UserID != userID {
		return res, failure.Forbidden("you can only pay for your own bookings") // nolint:wrapcheck
	}

	if booking.Status == bookingModel.StatusCancelled {
		return res, failure.BadRequestFromString("cannot pay for a cancelled booking") // nolint:wrapcheck
	}

	paymentID := record.NewID()

	slipPath := constant.Empty
	if req.Slip != nil && req.SlipHeader != nil {
		fileName := paymentID + path.Ext(req.SlipHeader.Filename)

		slipPath, err = s.s3.UploadFile(ctx, constant.Empty, s.cfg.External.S3.SlipDirectory, req.Slip, req.SlipHeader, fileName)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload payment slip")

			return res, fmt.Errorf("failed to upload payment slip: %w", err)
		}
	}

	payment := req.ToModel(paymentID, booking.UserID, slipPath)

	if err = s.repo.Append(ctx, payment); err != nil {
		log.Error().Err(err).Msg("failed to create payment")

		return res, fmt.Errorf("failed to create payment: %w", err)
	}

	s.publisher.Payment(ctx, events.PaymentEvent{
		Type:      events.PaymentSubmitted,
		PaymentID: payment.ID,
		BookingID: payment.BookingID,
		Amount:    payment.Amount,
		Status:    payment.Status,
	})

	res.FromModel(payment)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	payment, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if !found {
		return res, failure.NotFound("payment not found") // nolint:wrapcheck
	}

	res.FromModel(payment)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetPaymentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	payments, err := s.repo.LoadAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return res, fmt.Errorf("failed to get payments: %w", err)
	}

	res.FromModels(shared.Paginate(payments, params.Page, params.Limit), len(payments), params.Limit)

	return res, nil
}

func (s *serviceImpl) GetByBooking(ctx context.Context, bookingID string) (res []dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	payments, err := s.repo.FindByBooking(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking payments")

		return nil, fmt.Errorf("failed to get booking payments: %w", err)
	}

	res = make([]dto.PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		response := dto.PaymentResponse{}
		response.FromModel(payment)
		res = append(res, response)
	}

	return res, nil
}

func (s *serviceImpl) GetByUser(ctx context.Context, userID string, params gDto.QueryParams) (res dto.GetPaymentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByUser")
	defer scope.End()
	defer scope.TraceIfError(err)

	payments, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user payments")

		return res, fmt.Errorf("failed to get user payments: %w", err)
	}

	res.FromModels(shared.Paginate(payments, params.Page, params.Limit), len(payments), params.Limit)

	return res, nil
}

func (s *serviceImpl) Approve(ctx context.Context, id string, req dto.DecidePaymentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer scope.TraceIfError(err)

	payment, err := s.decide(ctx, id, model.StatusApproved, req.Notes)
	if err != nil {
		return err
	}

	// Approval moves the booking along to PAID when its state allows it.
	booking, found, err := s.bookingRepo.FindByID(ctx, payment.BookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if found && bookingModel.ValidTransition(booking.Status, bookingModel.StatusPaid) {
		booking.Status = bookingModel.StatusPaid

		if err = s.bookingRepo.Update(ctx, booking); err != nil {
			log.Error().Err(err).Msg("failed to update booking status")

			return fmt.Errorf("failed to update booking status: %w", err)
		}
	}

	s.publisher.Payment(ctx, events.PaymentEvent{
		Type:      events.PaymentApproved,
		PaymentID: payment.ID,
		BookingID: payment.BookingID,
		Amount:    payment.Amount,
		Status:    payment.Status,
	})

	return nil
}

func (s *serviceImpl) Reject(ctx context.Context, id string, req dto.DecidePaymentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer scope.TraceIfError(err)

	payment, err := s.decide(ctx, id, model.StatusRejected, req.Notes)
	if err != nil {
		return err
	}

	s.publisher.Payment(ctx, events.PaymentEvent{
		Type:      events.PaymentRejected,
		PaymentID: payment.ID,
		BookingID: payment.BookingID,
		Amount:    payment.Amount,
		Status:    payment.Status,
	})

	return nil
}

// Refund appends a compensating REFUND record for a single approved payment.
func (s *serviceImpl) Refund(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Refund")
	defer scope.End()
	defer scope.TraceIfError(err)

	payment, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return fmt.Errorf("failed to get payment: %w", err)
	}

	if !found {
		return failure.NotFound("payment not found") // nolint:wrapcheck
	}

	if payment.Method == model.MethodRefund {
		return failure.BadRequestFromString("refunds cannot be refunded") // nolint:wrapcheck
	}

	if payment.Status != model.StatusApproved {
		return failure.BadRequestFromString("only approved payments can be refunded") // nolint:wrapcheck
	}

	processedBy, _ := ctx.Value(constant.ContextKeyUserID).(string)

	refund := model.NewRefund(record.NewID(), payment, processedBy, timezone.Now())

	if err = s.repo.Append(ctx, refund); err != nil {
		log.Error().Err(err).Msg("failed to create refund")

		return fmt.Errorf("failed to create refund: %w", err)
	}

	s.publisher.Payment(ctx, events.PaymentEvent{
		Type:      events.PaymentRefunded,
		PaymentID: refund.ID,
		BookingID: refund.BookingID,
		Amount:    refund.Amount,
		Status:    refund.Status,
	})

	return nil
}

// RefundForBooking appends a compensating REFUND record for every approved
// payment of the booking. Refunds themselves are never refunded again.
func (s *serviceImpl) RefundForBooking(ctx context.Context, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefundForBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	payments, err := s.repo.FindByBooking(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking payments")

		return fmt.Errorf("failed to get booking payments: %w", err)
	}

	processedBy, _ := ctx.Value(constant.ContextKeyUserID).(string)

	for _, payment := range payments {
		if payment.Status != model.StatusApproved || payment.Method == model.MethodRefund {
			continue
		}

		refund := model.NewRefund(record.NewID(), payment, processedBy, timezone.Now())

		if err = s.repo.Append(ctx, refund); err != nil {
			log.Error().Err(err).Msg("failed to create refund")

			return fmt.Errorf("failed to create refund: %w", err)
		}

		s.publisher.Payment(ctx, events.PaymentEvent{
			Type:      events.PaymentRefunded,
			PaymentID: refund.ID,
			BookingID: refund.BookingID,
			Amount:    refund.Amount,
			Status:    refund.Status,
		})
	}

	return nil
}

// decide moves a PENDING payment to its final status and stamps who decided
// it and when.
func (s *serviceImpl) decide(ctx context.Context, id, status, notes string) (payment model.Payment, err error) {
	payment, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return payment, fmt.Errorf("failed to get payment: %w", err)
	}

	if !found {
		return payment, failure.NotFound("payment not found") // nolint:wrapcheck
	}

	if payment.Status != model.StatusPending {
		return payment, failure.BadRequestFromString(fmt.Sprintf("payment is already %s", payment.Status)) // nolint:wrapcheck
	}

	processedBy, _ := ctx.Value(constant.ContextKeyUserID).(string)

	payment.Status = status
	payment.Notes = notes
	payment.ProcessedBy = processedBy
	payment.ProcessedAt = timezone.Now()

	if err = s.repo.Update(ctx, payment); err != nil {
		log.Error().Err(err).Msg("failed to update payment")

		return payment, fmt.Errorf("failed to update payment: %w", err)
	}

	return payment, nil
}
