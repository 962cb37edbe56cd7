package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"rental/infras/otel"
	"rental/internal/domains/admin/model/dto"
	"rental/internal/domains/admin/service"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/validator"
	"rental/transport/http/response"
)

type Handler struct {
	service service.Admin
	otel    otel.Otel
}

func New(service service.Admin, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admins", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAdmin)
		routerGroup.Get("/", handler.GetAdmins)
		routerGroup.Get("/{id}", handler.GetAdminByID)
		routerGroup.Put("/{id}", handler.UpdateAdmin)
		routerGroup.Delete("/{id}", handler.DeleteAdmin)
	})
}

// CreateAdmin creates a new administrator account.
// @Summary Create a new admin
// @Description Create a new administrator account with a set of permission tokens.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.CreateAdminRequest true "Create Admin Request"
// @Success 201 {object} response.Data[dto.AdminResponse] "Admin created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admins [post]
// @Security BearerAuth
func (handler *Handler) CreateAdmin(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAdmin")
	defer scope.End()

	req := dto.CreateAdminRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	admin, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create admin")

		response.WithError(writer, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Admin created successfully by " + actor)

	response.WithJSON(writer, http.StatusCreated, admin)
}

// GetAdmins retrieves all administrator accounts.
// @Summary Get all admins
// @Description Retrieve all administrator accounts with pagination.
// @Tags Admin
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetAdminsResponse] "List of admins"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admins [get]
// @Security BearerAuth
func (handler *Handler) GetAdmins(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAdmins")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	admins, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get admins")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Admins retrieved successfully")

	response.WithJSON(w, http.StatusOK, admins)
}

// GetAdminByID retrieves an administrator by their ID.
// @Summary Get an admin by ID
// @Description Retrieve an administrator account by its unique identifier.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Admin ID"
// @Success 200 {object} response.Data[dto.AdminResponse] "Admin details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admins/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAdminByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAdminByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	admin, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get admin by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Admin retrieved successfully")

	response.WithJSON(w, http.StatusOK, admin)
}

// UpdateAdmin updates an administrator account.
// @Summary Update an admin by ID
// @Description Update an administrator's details and permission tokens.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Admin ID"
// @Param request body dto.UpdateAdminRequest true "Update Admin Request"
// @Success 200 {object} response.Message "Admin updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admins/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAdmin")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateAdminRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update admin")

		response.WithError(w, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Admin updated successfully by " + actor)

	response.WithMessage(w, http.StatusOK, "Admin updated successfully")
}

// DeleteAdmin removes an administrator account.
// @Summary Delete an admin by ID
// @Description Delete an administrator account using its unique identifier.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Admin ID"
// @Success 200 {object} response.Message "Admin deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admins/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAdmin")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete admin")

		response.WithError(w, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Admin deleted successfully by " + actor)

	response.WithMessage(w, http.StatusOK, "Admin deleted successfully")
}
