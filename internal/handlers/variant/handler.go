package variant

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"bookit/infras/otel"
	"bookit/internal/domains/variant/model/dto"
	"bookit/internal/domains/variant/service"
	"bookit/shared/actor"
	"bookit/shared/constant"
	"bookit/shared/validator"
	"bookit/transport/http/response"
)

type Handler struct {
	service service.Variant
	otel    otel.Otel
}

func New(service service.Variant, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/rooms/{roomID}/variants", handler.CreateVariant)
	router.Get("/rooms/{roomID}/variants", handler.GetVariants)
	router.Patch("/rooms/{roomID}/variants/{id}", handler.UpdateVariant)
	router.Delete("/rooms/{roomID}/variants/{id}", handler.DeleteVariant)
}

// CreateVariant adds a duration and price option to a room.
// @Summary Create a room variant
// @Tags Variant
// @Accept json
// @Produce json
// @Param storeID path string true "Store ID"
// @Param roomID path string true "Room ID"
// @Param request body dto.CreateVariantRequest true "Create Variant Request"
// @Success 201 {object} response.Data[dto.VariantResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/stores/{storeID}/rooms/{roomID}/variants [post]
// @Security BearerAuth
func (handler *Handler) CreateVariant(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateVariant")
	defer scope.End()

	req := dto.CreateVariantRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	variant, err := handler.service.Create(ctx, actor.ScopeOf(ctx, chi.URLParam(r, constant.RequestParamStoreID)), chi.URLParam(r, constant.RequestParamRoomID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create variant")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, variant)
}

// GetVariants lists the variants of a room.
// @Summary Get room variants
// @Tags Variant
// @Produce json
// @Param storeID path string true "Store ID"
// @Param roomID path string true "Room ID"
// @Success 200 {object} response.Data[dto.GetVariantsResponse]
// @Failure 404 {object} response.Error
// @Router /v1/stores/{storeID}/rooms/{roomID}/variants [get]
// @Security BearerAuth
func (handler *Handler) GetVariants(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVariants")
	defer scope.End()

	variants, err := handler.service.GetAll(ctx, chi.URLParam(r, constant.RequestParamStoreID), chi.URLParam(r, constant.RequestParamRoomID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, variants)
}

// UpdateVariant changes a room variant.
// @Summary Update a room variant
// @Tags Variant
// @Accept json
// @Produce json
// @Param storeID path string true "Store ID"
// @Param roomID path string true "Room ID"
// @Param id path string true "Variant ID"
// @Param request body dto.UpdateVariantRequest true "Update Variant Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/stores/{storeID}/rooms/{roomID}/variants/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateVariant")
	defer scope.End()

	req := dto.UpdateVariantRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	err := handler.service.Update(
		ctx,
		actor.ScopeOf(ctx, chi.URLParam(r, constant.RequestParamStoreID)),
		req,
		chi.URLParam(r, constant.RequestParamRoomID),
		chi.URLParam(r, constant.RequestParamID),
	)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update variant")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Variant updated successfully")
}

// DeleteVariant removes a room variant.
// @Summary Delete a room variant
// @Tags Variant
// @Produce json
// @Param storeID path string true "Store ID"
// @Param roomID path string true "Room ID"
// @Param id path string true "Variant ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/stores/{storeID}/rooms/{roomID}/variants/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteVariant")
	defer scope.End()

	err := handler.service.Delete(
		ctx,
		actor.ScopeOf(ctx, chi.URLParam(r, constant.RequestParamStoreID)),
		chi.URLParam(r, constant.RequestParamRoomID),
		chi.URLParam(r, constant.RequestParamID),
	)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete variant")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Variant deleted successfully")
}
