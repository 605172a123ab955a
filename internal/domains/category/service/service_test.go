package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bookit/config"
	"bookit/infras/otel/mocks"
	categoryMocks "bookit/internal/domains/category/mocks"
	"bookit/internal/domains/category/model"
	"bookit/internal/domains/category/model/dto"
	"bookit/internal/domains/category/service"
	"bookit/shared/actor"
	cacheMocks "bookit/shared/cache/mocks"
	"bookit/shared/constant"
	gDto "bookit/shared/dto"
	"bookit/shared/failure"
)

func newService(t *testing.T) (service.Category, *categoryMocks.MockCategory, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := categoryMocks.NewMockCategory(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestCategoryService_Create(t *testing.T) {
	scope := actor.NewScope("store-1", actor.Actor{ID: "staff-1", Role: constant.RoleAdmin})

	t.Run("successful creation", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, category model.Category) error {
				assert.Equal(t, "store-1", category.StoreID)
				assert.Equal(t, "staff-1", category.CreatedBy)

				return nil
			})
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.Create(context.Background(), scope, dto.CreateCategoryRequest{Name: "VIP"})
		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, "VIP", res.Name)
		assert.NotEmpty(t, res.ID)
	})

	t.Run("duplicate name is a conflict", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})

		_, err := svc.Create(context.Background(), scope, dto.CreateCategoryRequest{Name: "VIP"})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestCategoryService_Get(t *testing.T) {
	t.Run("cache miss reads the repository", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), "category:get:store-1:cat-1", gomock.Any()).Return(errors.New("miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{ID: "cat-1", StoreID: "store-1", Name: "VIP"}, nil)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

		res, err := svc.Get(context.Background(), "store-1", "cat-1")
		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, "VIP", res.Name)
	})

	t.Run("category of another store is not found", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{}, nil)

		_, err := svc.Get(context.Background(), "store-2", "cat-1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestCategoryService_GetAll(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	params := gDto.QueryParams{Page: 1, Limit: 10}

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	mockRepo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Category{{ID: "a"}, {ID: "b"}}, nil)
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := svc.GetAll(context.Background(), "store-1", params, gDto.FilterGroup{})
	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	assert.Len(t, res.Categories, 2)
}

func TestCategoryService_Delete(t *testing.T) {
	scope := actor.NewScope("store-1", actor.Actor{ID: "staff-1", Role: constant.RoleAdmin})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Delete(context.Background(), scope, "cat-1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("deletes and clears caches", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Delete(context.Background(), scope, "cat-1")
		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}
