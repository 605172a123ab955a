package category_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "bookit/infras/otel/mocks"
	"bookit/internal/domains/availability/engine"
	availabilityMocks "bookit/internal/domains/availability/mocks"
	availabilityDto "bookit/internal/domains/availability/model/dto"
	categoryMocks "bookit/internal/domains/category/mocks"
	"bookit/internal/domains/category/model/dto"
	variantMocks "bookit/internal/domains/variant/mocks"
	variantDto "bookit/internal/domains/variant/model/dto"
	"bookit/internal/handlers/category"
	"bookit/shared/constant"
	gDto "bookit/shared/dto"
	"bookit/shared/failure"
)

type fixture struct {
	categories   *categoryMocks.MockCategoryService
	variants     *variantMocks.MockVariantService
	availability *availabilityMocks.MockAvailabilityService
	router       http.Handler
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fixture{
		categories:   categoryMocks.NewMockCategoryService(ctrl),
		variants:     variantMocks.NewMockVariantService(ctrl),
		availability: availabilityMocks.NewMockAvailabilityService(ctrl),
	}

	handler := category.New(f.categories, f.variants, f.availability, otelMocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/stores/{storeID}", handler.Router)
	router.Route("/public/stores/{storeID}", handler.PublicRouter)
	f.router = router

	return f
}

func (f fixture) get(target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(context.WithValue(req.Context(), constant.ContextKeyUserID, constant.ContextGuest))

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func TestGetCategories(t *testing.T) {
	f := newFixture(t)

	f.categories.EXPECT().GetAll(gomock.Any(), "store-1", gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, params gDto.QueryParams, _ gDto.FilterGroup) (dto.GetCategoriesResponse, error) {
			assert.Equal(t, constant.MaxValueLimit, params.Limit)

			return dto.GetCategoriesResponse{}, nil
		})

	rec := f.get("/stores/store-1/categories?limit=5000")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetCategoryVariants(t *testing.T) {
	f := newFixture(t)

	f.variants.EXPECT().CategoryVariants(gomock.Any(), "store-1", "cat-1").Return(variantDto.GetCategoryVariantsResponse{CategoryID: "cat-1"}, nil)

	rec := f.get("/public/stores/store-1/categories/cat-1/variants")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"category_id":"cat-1"`)
}

func TestGetCategoryAvailability(t *testing.T) {
	t.Run("counts free rooms", func(t *testing.T) {
		f := newFixture(t)

		res := availabilityDto.CategoryAvailabilityResponse{CategoryID: "cat-1", Result: engine.Result{Available: true, Count: 3}}
		f.availability.EXPECT().CategoryPreview(gomock.Any(), "store-1", "cat-1", gomock.Any()).Return(res, nil)

		rec := f.get("/public/stores/store-1/categories/cat-1/availability?date=2030-01-10&start_time=18:00&end_time=21:00")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"count":3`)
	})

	t.Run("missing end", func(t *testing.T) {
		f := newFixture(t)

		rec := f.get("/public/stores/store-1/categories/cat-1/availability?date=2030-01-10&start_time=18:00")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown category", func(t *testing.T) {
		f := newFixture(t)

		f.availability.EXPECT().CategoryPreview(gomock.Any(), "store-1", "cat-9", gomock.Any()).
			Return(availabilityDto.CategoryAvailabilityResponse{}, failure.NotFound("category"))

		rec := f.get("/public/stores/store-1/categories/cat-9/availability?date=2030-01-10&start_time=18:00&end_time=21:00")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
