package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"rental/infras/otel"
	"rental/internal/domains/review/model/dto"
	"rental/internal/domains/review/service"
	"rental/shared/constant"
	"rental/shared/failure"
	"rental/shared/validator"
	"rental/transport/http/response"
)

type Handler struct {
	service service.Review
	otel    otel.Otel
}

func New(service service.Review, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reviews", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReview)
		routerGroup.Get("/myreviews", handler.GetMyReviews)
		routerGroup.Get("/vehicle/{id}", handler.GetReviewsByVehicle)
		routerGroup.Get("/vehicle/{id}/eligibility", handler.CheckEligibility)
		routerGroup.Delete("/{id}", handler.DeleteReview)
	})
}

// CreateReview posts a review for a completed rental.
// @Summary Create a review
// @Description Post a review for a vehicle the authenticated user rented and completed. One review per user per vehicle.
// @Tags Review
// @Accept json
// @Produce json
// @Param request body dto.CreateReviewRequest true "Create Review Request"
// @Success 201 {object} response.Data[dto.ReviewResponse] "Review created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews [post]
// @Security BearerAuth
func (handler *Handler) CreateReview(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReview")
	defer scope.End()

	req := dto.CreateReviewRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	review, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create review")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Review created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, review)
}

// GetMyReviews lists the authenticated user's reviews.
// @Summary Get my reviews
// @Description Retrieve all reviews written by the currently authenticated user.
// @Tags Review
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[[]dto.ReviewResponse] "List of user's reviews"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews/myreviews [get]
// @Security BearerAuth
func (handler *Handler) GetMyReviews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyReviews")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, err)

		return
	}

	reviews, err := handler.service.GetByUser(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user reviews")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User reviews retrieved successfully for user " + userID)

	response.WithJSON(w, http.StatusOK, reviews)
}

// GetReviewsByVehicle lists a vehicle's reviews with its average rating.
// @Summary Get reviews by vehicle
// @Description Retrieve every review of a vehicle along with the average rating.
// @Tags Review
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} response.Data[dto.GetReviewsResponse] "List of vehicle's reviews"
// @Failure 500 {object} response.Error
// @Router /v1/reviews/vehicle/{id} [get]
func (handler *Handler) GetReviewsByVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReviewsByVehicle")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	reviews, err := handler.service.GetByVehicle(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get vehicle reviews")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Vehicle reviews retrieved successfully")

	response.WithJSON(w, http.StatusOK, reviews)
}

// CheckEligibility reports whether the user may review the vehicle.
// @Summary Check review eligibility
// @Description Report whether the authenticated user may review the vehicle: a completed booking and no earlier review.
// @Tags Review
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} response.Data[bool] "Eligibility result"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews/vehicle/{id}/eligibility [get]
// @Security BearerAuth
func (handler *Handler) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckEligibility")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	eligible, err := handler.service.CanReview(ctx, userID, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check review eligibility")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Review eligibility checked successfully")

	response.WithJSON(w, http.StatusOK, eligible)
}

// DeleteReview removes a review.
// @Summary Delete a review by ID
// @Description Delete a review. Users may delete their own reviews; administrators may delete any.
// @Tags Review
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} response.Message "Review deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReview")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete review")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Review deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Review deleted successfully")
}
