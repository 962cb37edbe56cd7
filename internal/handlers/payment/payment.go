package payment

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"rental/infras/otel"
	"rental/internal/domains/payment/model/dto"
	"rental/internal/domains/payment/service"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"
	"rental/shared/validator"
	"rental/transport/http/response"
)

const (
	formFieldBookingID = "booking_id"
	formFieldAmount    = "amount"
	formFieldMethod    = "method"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.SubmitPayment)
		routerGroup.Get("/", handler.GetPayments)
		routerGroup.Get("/mypayments", handler.GetMyPayments)
		routerGroup.Get("/{id}", handler.GetPaymentByID)
		routerGroup.Get("/booking/{id}", handler.GetPaymentsByBooking)
		routerGroup.Post("/{id}/approve", handler.ApprovePayment)
		routerGroup.Post("/{id}/reject", handler.RejectPayment)
		routerGroup.Post("/{id}/refund", handler.RefundPayment)
	})
}

// SubmitPayment submits a payment with an optional slip file.
// @Summary Submit a payment
// @Description Submit a payment for a booking. The payment slip is uploaded as multipart form data under the "file" field.
// @Tags Payment
// @Accept multipart/form-data
// @Produce json
// @Param booking_id formData string true "Booking ID"
// @Param amount formData number true "Payment amount"
// @Param method formData string true "Payment method"
// @Param file formData file false "Payment slip"
// @Success 201 {object} response.Data[dto.PaymentResponse] "Payment submitted successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments [post]
// @Security BearerAuth
func (handler *Handler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitPayment")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequestFromString("invalid multipart form"))

		return
	}

	amount, err := strconv.ParseFloat(r.FormValue(formFieldAmount), 64)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse amount")

		response.WithError(w, failure.BadRequestFromString("amount must be a number"))

		return
	}

	req := dto.SubmitPaymentRequest{
		BookingID: r.FormValue(formFieldBookingID),
		Amount:    amount,
		Method:    r.FormValue(formFieldMethod),
	}

	// The slip is optional; submissions without one stay reviewable.
	if file, fileHeader, fileErr := r.FormFile(constant.FormFile); fileErr == nil {
		defer file.Close()

		req.Slip = file
		req.SlipHeader = fileHeader
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	payment, err := handler.service.Submit(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit payment")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Payment submitted successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, payment)
}

// GetPayments retrieves all payments.
// @Summary Get all payments
// @Description Retrieve all payments with pagination. Administrators only.
// @Tags Payment
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetPaymentsResponse] "List of payments"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments [get]
// @Security BearerAuth
func (handler *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	payments, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payments retrieved successfully")

	response.WithJSON(w, http.StatusOK, payments)
}

// GetMyPayments retrieves the authenticated user's payments.
// @Summary Get my payments
// @Description Retrieve all payments of the currently authenticated user with pagination.
// @Tags Payment
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetPaymentsResponse] "List of user's payments"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/mypayments [get]
// @Security BearerAuth
func (handler *Handler) GetMyPayments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyPayments")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	payments, err := handler.service.GetByUser(ctx, userID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user payments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User payments retrieved successfully for user " + userID)

	response.WithJSON(w, http.StatusOK, payments)
}

// GetPaymentByID retrieves a payment by its ID.
// @Summary Get a payment by ID
// @Description Retrieve a payment by its unique identifier.
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Data[dto.PaymentResponse] "Payment details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	payment, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment retrieved successfully")

	response.WithJSON(w, http.StatusOK, payment)
}

// GetPaymentsByBooking retrieves every payment of a booking.
// @Summary Get payments by booking
// @Description Retrieve all payments, including refunds, recorded for a booking.
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[[]dto.PaymentResponse] "List of booking's payments"
// @Failure 500 {object} response.Error
// @Router /v1/payments/booking/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentsByBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentsByBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	payments, err := handler.service.GetByBooking(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking payments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking payments retrieved successfully")

	response.WithJSON(w, http.StatusOK, payments)
}

// ApprovePayment approves a pending payment.
// @Summary Approve a payment
// @Description Approve a pending payment and move its booking to PAID when the booking state allows it.
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param request body dto.DecidePaymentRequest true "Decision notes"
// @Success 200 {object} response.Message "Payment approved successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{id}/approve [post]
// @Security BearerAuth
func (handler *Handler) ApprovePayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApprovePayment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.DecidePaymentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Approve(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to approve payment")

		response.WithError(w, err)

		return
	}

	admin, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Payment approved successfully by " + admin)

	response.WithMessage(w, http.StatusOK, "Payment approved successfully")
}

// RejectPayment rejects a pending payment.
// @Summary Reject a payment
// @Description Reject a pending payment with optional decision notes.
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param request body dto.DecidePaymentRequest true "Decision notes"
// @Success 200 {object} response.Message "Payment rejected successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{id}/reject [post]
// @Security BearerAuth
func (handler *Handler) RejectPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectPayment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.DecidePaymentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Reject(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject payment")

		response.WithError(w, err)

		return
	}

	admin, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Payment rejected successfully by " + admin)

	response.WithMessage(w, http.StatusOK, "Payment rejected successfully")
}

// RefundPayment refunds a single approved payment.
// @Summary Refund a payment
// @Description Record a compensating refund for an approved payment. Pending, rejected and refund records are not refundable.
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Message "Payment refunded successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{id}/refund [post]
// @Security BearerAuth
func (handler *Handler) RefundPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefundPayment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Refund(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refund payment")

		response.WithError(w, err)

		return
	}

	admin, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Payment refunded successfully by " + admin)

	response.WithMessage(w, http.StatusOK, "Payment refunded successfully")
}
