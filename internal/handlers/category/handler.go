package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"bookit/infras/otel"
	availabilityDto "bookit/internal/domains/availability/model/dto"
	availabilityService "bookit/internal/domains/availability/service"
	"bookit/internal/domains/category/model"
	"bookit/internal/domains/category/model/dto"
	"bookit/internal/domains/category/service"
	variantService "bookit/internal/domains/variant/service"
	"bookit/shared/actor"
	"bookit/shared/constant"
	gDto "bookit/shared/dto"
	"bookit/shared/validator"
	"bookit/transport/http/response"
)

type Handler struct {
	service      service.Category
	variant      variantService.Variant
	availability availabilityService.Availability
	otel         otel.Otel
}

func New(service service.Category, variant variantService.Variant, availability availabilityService.Availability, otel otel.Otel) Handler {
	return Handler{
		service:      service,
		variant:      variant,
		availability: availability,
		otel:         otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/categories", handler.CreateCategory)
	router.Get("/categories", handler.GetCategories)
	router.Get("/categories/{id}", handler.GetCategoryByID)
	router.Patch("/categories/{id}", handler.UpdateCategory)
	router.Delete("/categories/{id}", handler.DeleteCategory)
	handler.PublicRouter(router)
}

// PublicRouter serves the category reads the public booking page needs.
func (handler *Handler) PublicRouter(router chi.Router) {
	router.Get("/categories/{categoryID}/variants", handler.GetCategoryVariants)
	router.Get("/categories/{categoryID}/availability", handler.GetCategoryAvailability)
}

// CreateCategory creates a room category.
// @Summary Create a category
// @Tags Category
// @Accept json
// @Produce json
// @Param storeID path string true "Store ID"
// @Param request body dto.CreateCategoryRequest true "Create Category Request"
// @Success 201 {object} response.Data[dto.CategoryResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/stores/{storeID}/categories [post]
// @Security BearerAuth
func (handler *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCategory")
	defer scope.End()

	req := dto.CreateCategoryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	category, err := handler.service.Create(ctx, actor.ScopeOf(ctx, chi.URLParam(r, constant.RequestParamStoreID)), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create category")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, category)
}

// GetCategories lists the categories of a store.
// @Summary Get categories
// @Tags Category
// @Produce json
// @Param storeID path string true "Store ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Success 200 {object} response.Data[dto.GetCategoriesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/stores/{storeID}/categories [get]
// @Security BearerAuth
func (handler *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCategories")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.WithDefaultSort(model.FieldName, gDto.SortDirAsc)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorLike,
				Value:    r.URL.Query().Get(model.FieldName),
				Table:    model.TableName,
			},
		},
	}

	categories, err := handler.service.GetAll(ctx, chi.URLParam(r, constant.RequestParamStoreID), queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get categories")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, categories)
}

// GetCategoryByID retrieves a category by its ID.
// @Summary Get a category
// @Tags Category
// @Produce json
// @Param storeID path string true "Store ID"
// @Param id path string true "Category ID"
// @Success 200 {object} response.Data[dto.CategoryResponse]
// @Failure 404 {object} response.Error
// @Router /v1/stores/{storeID}/categories/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetCategoryByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCategoryByID")
	defer scope.End()

	category, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamStoreID), chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, category)
}

// UpdateCategory renames a category.
// @Summary Update a category
// @Tags Category
// @Accept json
// @Produce json
// @Param storeID path string true "Store ID"
// @Param id path string true "Category ID"
// @Param request body dto.UpdateCategoryRequest true "Update Category Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/stores/{storeID}/categories/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCategory")
	defer scope.End()

	req := dto.UpdateCategoryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, actor.ScopeOf(ctx, chi.URLParam(r, constant.RequestParamStoreID)), req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update category")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Category updated successfully")
}

// DeleteCategory removes a category that no room belongs to.
// @Summary Delete a category
// @Tags Category
// @Produce json
// @Param storeID path string true "Store ID"
// @Param id path string true "Category ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/stores/{storeID}/categories/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCategory")
	defer scope.End()

	if err := handler.service.Delete(ctx, actor.ScopeOf(ctx, chi.URLParam(r, constant.RequestParamStoreID)), chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete category")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Category deleted successfully")
}

// GetCategoryVariants lists the distinct active variants offered in a category.
// @Summary Category variants
// @Tags Category
// @Produce json
// @Param storeID path string true "Store ID"
// @Param categoryID path string true "Category ID"
// @Success 200 {object} response.Data[variantDto.GetCategoryVariantsResponse]
// @Failure 404 {object} response.Error
// @Router /v1/public/stores/{storeID}/categories/{categoryID}/variants [get]
func (handler *Handler) GetCategoryVariants(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCategoryVariants")
	defer scope.End()

	variants, err := handler.variant.CategoryVariants(ctx, chi.URLParam(r, constant.RequestParamStoreID), chi.URLParam(r, constant.RequestParamCategory))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, variants)
}

// GetCategoryAvailability counts free rooms of a category for a slot.
// @Summary Category availability
// @Description Requests waiting for a room take one room of the category each. Conversion re-checks the chosen room.
// @Tags Availability
// @Produce json
// @Param storeID path string true "Store ID"
// @Param categoryID path string true "Category ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param start_time query string true "Start (HH:MM)"
// @Param end_time query string true "End (HH:MM)"
// @Success 200 {object} response.Data[availabilityDto.CategoryAvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/public/stores/{storeID}/categories/{categoryID}/availability [get]
func (handler *Handler) GetCategoryAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCategoryAvailability")
	defer scope.End()

	req := availabilityDto.AvailabilityQuery{}
	req.FromRequest(r)

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.availability.CategoryPreview(ctx, chi.URLParam(r, constant.RequestParamStoreID), chi.URLParam(r, constant.RequestParamCategory), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to preview category availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
